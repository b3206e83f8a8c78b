package dto

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

// ProjectMemberDTO represents a member of a project
type ProjectMemberDTO struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
	User      *UserDTO  `json:"user,omitempty"`
}

// ToProjectMemberDTO converts a bare membership row
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
		JoinedAt:  member.JoinedAt,
	}
}

// ToProjectMemberDTOs converts memberships joined with their users
func ToProjectMemberDTOs(members []models.ProjectMemberWithUser) []ProjectMemberDTO {
	out := make([]ProjectMemberDTO, len(members))
	for i, m := range members {
		out[i] = ToProjectMemberDTO(m.ProjectMember)
		user := ToUserDTO(m.User)
		out[i].User = &user
	}
	return out
}
