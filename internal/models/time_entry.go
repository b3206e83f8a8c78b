package models

import "time"

// TimeEntry is one tracked interval. EndTime stays nil while the timer runs.
type TimeEntry struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	TaskID      string     `gorm:"type:varchar(36);not null;index" json:"taskId"`
	UserID      string     `gorm:"type:varchar(36);not null;index" json:"userId"`
	StartTime   time.Time  `gorm:"not null" json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Duration    int        `gorm:"not null;default:0" json:"duration"`
	Description *string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Active reports whether the timer is still running.
func (e *TimeEntry) Active() bool {
	return e.EndTime == nil
}

// TimeEntryPatch is a partial update of a time entry. EndTime is a plain
// pointer, so a JSON null reads as absent: a stopped entry cannot be
// reopened through a patch, only a new timer can be started.
type TimeEntryPatch struct {
	StartTime   *time.Time       `json:"startTime"`
	EndTime     *time.Time       `json:"endTime"`
	Duration    *int             `json:"duration"`
	Description Optional[string] `json:"description"`
}

func (p TimeEntryPatch) Apply(e *TimeEntry) {
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		end := *p.EndTime
		e.EndTime = &end
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	p.Description.apply(&e.Description)
}
