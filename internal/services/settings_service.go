package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// SettingsService handles per-user preferences
type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the user's settings. A user who never saved any gets the
// defaults, which are not persisted by this call.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			defaults := models.NewUserSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	return settings, nil
}

// Update upserts the user's settings
func (s *SettingsService) Update(ctx context.Context, userID string, patch models.SettingsPatch) (*models.UserSettings, error) {
	var v fieldChecks
	if patch.Theme != nil {
		v.check(strings.TrimSpace(*patch.Theme) != "", "theme", "required", "theme cannot be empty")
	}
	if patch.Timezone != nil {
		v.check(strings.TrimSpace(*patch.Timezone) != "", "timezone", "required", "timezone cannot be empty")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	settings, err := s.repo.Upsert(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}
