package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/taskflow-api/internal/models"
)

var (
	// ErrNotFound is the missing-result marker every lookup returns for an unknown id.
	ErrNotFound = errors.New("repository: record not found")
	// ErrUsernameTaken is returned when a write would duplicate User.Username.
	ErrUsernameTaken = errors.New("repository: username already exists")
	// ErrEmailTaken is returned when a write would duplicate User.Email.
	ErrEmailTaken = errors.New("repository: email already exists")
	// ErrActiveTimeEntryExists is returned when starting a second running timer for one user.
	ErrActiveTimeEntryExists = errors.New("repository: user already has an active time entry")
	// ErrAlreadyProjectMember is returned when a (project, user) membership already exists.
	ErrAlreadyProjectMember = errors.New("repository: user is already a member of the project")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create hashes user.Password, assigns id and timestamps, and stores the user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update merges the patch over the stored user, re-hashing a supplied password
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)

	// List returns every user ordered by creation time
	List(ctx context.Context) ([]models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// Create applies defaults, assigns id and timestamps, and stores the project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id string) (*models.Project, error)

	// ListByUser returns projects the user created or is a member of, without duplicates
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)

	// Update merges the patch over the stored project
	Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)

	// Delete removes the project and its memberships, reporting whether it existed
	Delete(ctx context.Context, id string) (bool, error)

	// AddMember adds a membership row; an empty role means models.DefaultProjectMemberRole
	AddMember(ctx context.Context, projectID, userID, role string) (*models.ProjectMember, error)

	// ListMembers lists the members of a project joined with their users
	ListMembers(ctx context.Context, projectID string) ([]models.ProjectMemberWithUser, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create applies defaults, assigns id and timestamps, and stores the task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List returns every task
	List(ctx context.Context) ([]models.Task, error)

	// ListByProject returns tasks belonging to a project
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)

	// ListByAssignee returns tasks assigned to a user
	ListByAssignee(ctx context.Context, userID string) ([]models.Task, error)

	// Update merges the patch over the stored task
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)

	// Delete removes a task, reporting whether it existed
	Delete(ctx context.Context, id string) (bool, error)
}

// TimeEntryRepository defines the interface for time tracking data access
type TimeEntryRepository interface {
	// Create stores an entry; a running entry is rejected with ErrActiveTimeEntryExists
	// when the user already has one
	Create(ctx context.Context, entry *models.TimeEntry) error

	// FindByID finds a time entry by ID
	FindByID(ctx context.Context, id string) (*models.TimeEntry, error)

	// ListByTask returns entries recorded against a task
	ListByTask(ctx context.Context, taskID string) ([]models.TimeEntry, error)

	// ListByUser returns entries recorded by a user
	ListByUser(ctx context.Context, userID string) ([]models.TimeEntry, error)

	// Update merges the patch over the stored entry
	Update(ctx context.Context, id string, patch models.TimeEntryPatch) (*models.TimeEntry, error)

	// FindActive returns the user's running entry, earliest start first
	FindActive(ctx context.Context, userID string) (*models.TimeEntry, error)
}

// CommentRepository defines the interface for task comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error

	// ListByTask returns comments joined with their authors, dropping orphans
	ListByTask(ctx context.Context, taskID string) ([]models.CommentWithUser, error)
}

// ActivityLogRepository defines the interface for activity log data access
type ActivityLogRepository interface {
	Create(ctx context.Context, log *models.ActivityLog) error

	// ListByUser returns one page of a user's activity, newest first, and the total count
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.ActivityLog, int64, error)
}

// SettingsRepository defines the interface for per-user settings data access
type SettingsRepository interface {
	// FindByUser finds the settings row of a user
	FindByUser(ctx context.Context, userID string) (*models.UserSettings, error)

	// Upsert merges the patch over existing settings, or over the defaults when none exist
	Upsert(ctx context.Context, userID string, patch models.SettingsPatch) (*models.UserSettings, error)
}

// Repositories bundles one implementation of every repository so a single
// backend can be handed to the services.
type Repositories struct {
	Users        UserRepository
	Projects     ProjectRepository
	Tasks        TaskRepository
	TimeEntries  TimeEntryRepository
	Comments     CommentRepository
	ActivityLogs ActivityLogRepository
	Settings     SettingsRepository
}
