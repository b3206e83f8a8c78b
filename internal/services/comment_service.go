package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// CommentService handles task discussion threads
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// Create adds a comment by userID to an existing task
func (s *CommentService) Create(ctx context.Context, taskID, userID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	var v fieldChecks
	v.check(content != "", "content", "required", "content is required")
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.ensureTask(ctx, taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:  taskID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListByTask returns the comments on a task with their authors, oldest first
func (s *CommentService) ListByTask(ctx context.Context, taskID string) ([]models.CommentWithUser, error) {
	if err := s.ensureTask(ctx, taskID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) ensureTask(ctx context.Context, taskID string) error {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	return nil
}
