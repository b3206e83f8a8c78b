package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow-api/internal/logging"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/repository/memory"
)

const testSecret = "test-secret"

// testEnv wires every service over a fresh in-memory store.
type testEnv struct {
	repos     *repository.Repositories
	tokens    *TokenService
	auth      *AuthService
	users     *UserService
	projects  *ProjectService
	tasks     *TaskService
	entries   *TimeEntryService
	comments  *CommentService
	activity  *ActivityService
	settings  *SettingsService
	analytics *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := memory.New()
	tokens := NewTokenService(testSecret, time.Hour)
	activity := NewActivityService(repos.ActivityLogs, logging.NewDiscardLogger())

	return &testEnv{
		repos:     repos,
		tokens:    tokens,
		auth:      NewAuthService(repos.Users, tokens),
		users:     NewUserService(repos.Users),
		projects:  NewProjectService(repos.Projects, repos.Users, activity),
		tasks:     NewTaskService(repos.Tasks, activity, nil),
		entries:   NewTimeEntryService(repos.TimeEntries, repos.Tasks, activity),
		comments:  NewCommentService(repos.Comments, repos.Tasks),
		activity:  activity,
		settings:  NewSettingsService(repos.Settings),
		analytics: NewAnalyticsService(repos.Tasks),
	}
}

func (e *testEnv) register(t *testing.T, username string, role models.UserRole) *models.User {
	t.Helper()

	result, err := e.auth.Register(context.Background(), RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	})
	require.NoError(t, err)
	return result.User
}
