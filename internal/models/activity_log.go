package models

import "time"

const (
	ActivityCreated     = "created"
	ActivityUpdated     = "updated"
	ActivityDeleted     = "deleted"
	ActivityStarted     = "started"
	ActivityStopped     = "stopped"
	ActivityMemberAdded = "member_added"
)

// ActivityLog is an append-only audit record of something a user did.
type ActivityLog struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string         `gorm:"type:varchar(36);not null;index" json:"userId"`
	Action     string         `gorm:"type:varchar(64);not null" json:"action"`
	EntityType string         `gorm:"type:varchar(32);not null" json:"entityType"`
	EntityID   string         `gorm:"type:varchar(36)" json:"entityId"`
	Details    map[string]any `gorm:"type:text;serializer:json" json:"details,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}

// Entity types recorded in activity logs
const (
	EntityProject   = "project"
	EntityTask      = "task"
	EntityTimeEntry = "time_entry"
)
