package services

import (
	"log/slog"

	"github.com/yukikurage/taskflow-api/internal/repository"
)

// Services bundles every service built over one storage backend.
type Services struct {
	Tokens      *TokenService
	Auth        *AuthService
	Users       *UserService
	Projects    *ProjectService
	Tasks       *TaskService
	TimeEntries *TimeEntryService
	Comments    *CommentService
	Activity    *ActivityService
	Settings    *SettingsService
	Analytics   *AnalyticsService
}

// New wires the services. drafter may be nil when AI drafting is disabled.
func New(repos *repository.Repositories, tokens *TokenService, drafter TaskDrafter, logger *slog.Logger) *Services {
	activity := NewActivityService(repos.ActivityLogs, logger)

	return &Services{
		Tokens:      tokens,
		Auth:        NewAuthService(repos.Users, tokens),
		Users:       NewUserService(repos.Users),
		Projects:    NewProjectService(repos.Projects, repos.Users, activity),
		Tasks:       NewTaskService(repos.Tasks, activity, drafter),
		TimeEntries: NewTimeEntryService(repos.TimeEntries, repos.Tasks, activity),
		Comments:    NewCommentService(repos.Comments, repos.Tasks),
		Activity:    activity,
		Settings:    NewSettingsService(repos.Settings),
		Analytics:   NewAnalyticsService(repos.Tasks),
	}
}
