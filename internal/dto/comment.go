package dto

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

// CommentDTO represents a task comment with its author
type CommentDTO struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	User      *UserDTO  `json:"user,omitempty"`
}

// ToCommentDTO converts a comment without author details
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts comments joined with their authors
func ToCommentDTOs(comments []models.CommentWithUser) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = ToCommentDTO(c.Comment)
		user := ToUserDTO(c.User)
		out[i].User = &user
	}
	return out
}
