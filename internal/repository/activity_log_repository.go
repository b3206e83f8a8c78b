package repository

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create creates an activity log entry
func (r *GormActivityLogRepository) Create(ctx context.Context, log *models.ActivityLog) error {
	log.ID = models.NewID()
	log.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByUser retrieves a page of a user's activity, newest first
func (r *GormActivityLogRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ActivityLog
	if err := query.Order("created_at DESC, id DESC").
		Scopes(paginate(offset, limit)).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
