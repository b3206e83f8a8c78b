package repository

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = models.NewID()
	comment.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByTask lists the comments of a task with their authors
func (r *GormCommentRepository) ListByTask(ctx context.Context, taskID string) ([]models.CommentWithUser, error) {
	db := r.db.WithContext(ctx)

	var comments []models.Comment
	if err := db.Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := usersByID(db, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]models.CommentWithUser, 0, len(comments))
	for _, c := range comments {
		user, ok := users[c.UserID]
		if !ok {
			continue
		}
		result = append(result, models.CommentWithUser{Comment: c, User: user})
	}
	return result, nil
}
