package models

import "time"

const DefaultProjectMemberRole = "member"

// ProjectMember grants a user visibility into a project they did not create.
type ProjectMember struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_members_project_user" json:"projectId"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_members_project_user;index" json:"userId"`
	Role      string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// ProjectMemberWithUser is a membership row joined with its user.
type ProjectMemberWithUser struct {
	ProjectMember
	User User `json:"user"`
}
