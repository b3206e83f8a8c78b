package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description *string       `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	Deadline    *time.Time    `json:"deadline"`
	Progress    int           `gorm:"not null;default:0" json:"progress"`
	CreatedBy   string        `gorm:"type:varchar(36);index;not null" json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ApplyDefaults fills the fields a caller may omit on creation.
func (p *Project) ApplyDefaults() {
	if p.Status == "" {
		p.Status = ProjectStatusPlanning
	}
}

type ProjectPatch struct {
	Name        *string             `json:"name"`
	Description Optional[string]    `json:"description"`
	Status      *ProjectStatus      `json:"status"`
	Deadline    Optional[time.Time] `json:"deadline"`
	Progress    *int                `json:"progress"`
}

func (p ProjectPatch) Apply(project *Project) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	p.Description.apply(&project.Description)
	if p.Status != nil {
		project.Status = *p.Status
	}
	p.Deadline.apply(&project.Deadline)
	if p.Progress != nil {
		project.Progress = *p.Progress
	}
}
