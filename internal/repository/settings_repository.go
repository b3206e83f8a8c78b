package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormSettingsRepository is a GORM implementation of SettingsRepository
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByUser finds the settings of a user
func (r *GormSettingsRepository) FindByUser(ctx context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, notFound(err)
	}
	return &settings, nil
}

// Upsert creates or updates the settings of a user
func (r *GormSettingsRepository) Upsert(ctx context.Context, userID string, patch models.SettingsPatch) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&settings).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = models.NewUserSettings(userID)
			settings.ID = models.NewID()
			patch.Apply(&settings)
			settings.UpdatedAt = time.Now()
			return tx.Create(&settings).Error
		}
		if err != nil {
			return err
		}

		patch.Apply(&settings)
		settings.UpdatedAt = time.Now()
		return tx.Save(&settings).Error
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
