package models

import "time"

const (
	DefaultTheme    = "light"
	DefaultTimezone = "UTC"
)

// DefaultNotifications returns a fresh copy of the channel defaults.
func DefaultNotifications() map[string]bool {
	return map[string]bool{
		"email":    true,
		"push":     true,
		"mentions": true,
	}
}

type UserSettings struct {
	ID            string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	Theme         string          `gorm:"type:varchar(32);not null" json:"theme"`
	Notifications map[string]bool `gorm:"type:text;serializer:json" json:"notifications"`
	Timezone      string          `gorm:"type:varchar(64);not null" json:"timezone"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewUserSettings returns the settings a user starts with.
func NewUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:        userID,
		Theme:         DefaultTheme,
		Notifications: DefaultNotifications(),
		Timezone:      DefaultTimezone,
	}
}

// SettingsPatch replaces Notifications wholesale when it is non-nil.
type SettingsPatch struct {
	Theme         *string         `json:"theme"`
	Notifications map[string]bool `json:"notifications"`
	Timezone      *string         `json:"timezone"`
}

func (p SettingsPatch) Apply(s *UserSettings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Notifications != nil {
		n := make(map[string]bool, len(p.Notifications))
		for k, v := range p.Notifications {
			n[k] = v
		}
		s.Notifications = n
	}
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
}
