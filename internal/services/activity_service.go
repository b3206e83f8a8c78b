package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// ActivityService records and lists the audit trail of user actions.
type ActivityService struct {
	repo   repository.ActivityLogRepository
	logger *slog.Logger
}

func NewActivityService(repo repository.ActivityLogRepository, logger *slog.Logger) *ActivityService {
	return &ActivityService{
		repo:   repo,
		logger: logger,
	}
}

// Record appends an activity such as "task.updated". It never fails the
// calling operation; write errors are logged and dropped.
func (s *ActivityService) Record(ctx context.Context, userID, entityType, entityID, verb string, details map[string]any) {
	if s == nil {
		return
	}
	entry := &models.ActivityLog{
		UserID:     userID,
		Action:     fmt.Sprintf("%s.%s", entityType, verb),
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to record activity",
			"action", entry.Action,
			"entity_id", entityID,
			"user_id", userID,
			"error", err)
	}
}

// ListForUser returns one page of the user's activity, newest first.
func (s *ActivityService) ListForUser(ctx context.Context, userID string, offset, limit int) ([]models.ActivityLog, int64, error) {
	logs, total, err := s.repo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity: %w", err)
	}
	return logs, total, nil
}
