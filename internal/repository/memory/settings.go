package memory

import (
	"context"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

type settingsRepository struct {
	s *Store
}

// NewSettingsRepository creates a SettingsRepository over the store
func NewSettingsRepository(s *Store) repository.SettingsRepository {
	return &settingsRepository{s: s}
}

func (r *settingsRepository) FindByUser(_ context.Context, userID string) (*models.UserSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	settings := r.findLocked(userID)
	if settings == nil {
		return nil, repository.ErrNotFound
	}
	return settings, nil
}

func (r *settingsRepository) Upsert(_ context.Context, userID string, patch models.SettingsPatch) (*models.UserSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	settings := r.findLocked(userID)
	if settings == nil {
		fresh := models.NewUserSettings(userID)
		fresh.ID = models.NewID()
		settings = &fresh
	}

	patch.Apply(settings)
	settings.UpdatedAt = touch(settings.UpdatedAt)

	stored := *settings
	stored.Notifications = cloneBoolMap(settings.Notifications)
	r.s.userSettings[settings.ID] = stored
	return settings, nil
}

// findLocked returns a copy of the user's settings; the store lock must be held.
func (r *settingsRepository) findLocked(userID string) *models.UserSettings {
	for _, s := range r.s.userSettings {
		if s.UserID == userID {
			s.Notifications = cloneBoolMap(s.Notifications)
			return &s
		}
	}
	return nil
}
