package repository

import "gorm.io/gorm"

// NewGormRepositories returns every repository backed by the given database.
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Projects:     NewProjectRepository(db),
		Tasks:        NewTaskRepository(db),
		TimeEntries:  NewTimeEntryRepository(db),
		Comments:     NewCommentRepository(db),
		ActivityLogs: NewActivityLogRepository(db),
		Settings:     NewSettingsRepository(db),
	}
}
