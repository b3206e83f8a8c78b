package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// Create creates a time entry, refusing a second running timer for the same
// user. Where the dialect supports partial indexes, idx_time_entries_one_active
// catches starts that race past the count.
func (r *GormTimeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if entry.Active() {
			var count int64
			if err := tx.Model(&models.TimeEntry{}).
				Where("user_id = ? AND end_time IS NULL", entry.UserID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrActiveTimeEntryExists
			}
		}

		entry.ID = models.NewID()
		entry.CreatedAt = time.Now()
		return tx.Create(entry).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrActiveTimeEntryExists
	}
	return err
}

// FindByID finds a time entry by ID
func (r *GormTimeEntryRepository) FindByID(ctx context.Context, id string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// ListByTask returns the entries of a task
func (r *GormTimeEntryRepository) ListByTask(ctx context.Context, taskID string) ([]models.TimeEntry, error) {
	return r.find(r.db.WithContext(ctx).Where("task_id = ?", taskID))
}

// ListByUser returns the entries of a user
func (r *GormTimeEntryRepository) ListByUser(ctx context.Context, userID string) ([]models.TimeEntry, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormTimeEntryRepository) find(query *gorm.DB) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := query.Order("start_time ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Update merges the patch into the stored entry
func (r *GormTimeEntryRepository) Update(ctx context.Context, id string, patch models.TimeEntryPatch) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		patch.Apply(&entry)
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindActive finds the user's running entry
func (r *GormTimeEntryRepository) FindActive(ctx context.Context, userID string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_time IS NULL", userID).
		Order("start_time ASC, id ASC").
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}
