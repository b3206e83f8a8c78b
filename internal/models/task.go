package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time   `gorm:"index" json:"dueDate"`
	Progress    int          `gorm:"not null;default:0" json:"progress"`
	ProjectID   *string      `gorm:"type:varchar(36);index" json:"projectId"`
	AssigneeID  *string      `gorm:"type:varchar(36);index" json:"assigneeId"`
	CreatedBy   string       `gorm:"type:varchar(36);not null" json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ApplyDefaults fills the fields a caller may omit on creation.
func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
}

// IsOverdue reports whether the task has a due date before now and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusDone
}

type TaskPatch struct {
	Title       *string             `json:"title"`
	Description Optional[string]    `json:"description"`
	Status      *TaskStatus         `json:"status"`
	Priority    *TaskPriority       `json:"priority"`
	DueDate     Optional[time.Time] `json:"dueDate"`
	Progress    *int                `json:"progress"`
	ProjectID   Optional[string]    `json:"projectId"`
	AssigneeID  Optional[string]    `json:"assigneeId"`
}

func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	p.Description.apply(&t.Description)
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	p.DueDate.apply(&t.DueDate)
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	p.ProjectID.apply(&t.ProjectID)
	p.AssigneeID.apply(&t.AssigneeID)
}
