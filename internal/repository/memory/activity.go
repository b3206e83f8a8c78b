package memory

import (
	"context"
	"sort"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

type activityLogRepository struct {
	s *Store
}

// NewActivityLogRepository creates an ActivityLogRepository over the store
func NewActivityLogRepository(s *Store) repository.ActivityLogRepository {
	return &activityLogRepository{s: s}
}

func (r *activityLogRepository) Create(_ context.Context, log *models.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.ID = models.NewID()
	log.CreatedAt = time.Now()

	stored := *log
	stored.Details = cloneAnyMap(log.Details)
	r.s.activityLogs[log.ID] = stored
	return nil
}

func (r *activityLogRepository) ListByUser(_ context.Context, userID string, offset, limit int) ([]models.ActivityLog, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	logs := make([]models.ActivityLog, 0)
	for _, l := range r.s.activityLogs {
		if l.UserID == userID {
			logs = append(logs, l)
		}
	}

	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].CreatedAt.Equal(logs[j].CreatedAt) {
			return logs[i].CreatedAt.After(logs[j].CreatedAt)
		}
		return logs[i].ID > logs[j].ID
	})

	total := int64(len(logs))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(logs) {
		return []models.ActivityLog{}, total, nil
	}
	logs = logs[offset:]
	if limit > 0 && limit < len(logs) {
		logs = logs[:limit]
	}

	page := make([]models.ActivityLog, len(logs))
	for i, l := range logs {
		l.Details = cloneAnyMap(l.Details)
		page[i] = l
	}
	return page, total, nil
}
