package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow-api/internal/models"
)

func newTaskFor(t *testing.T, env *testEnv, user *models.User) *models.Task {
	t.Helper()
	task, err := env.tasks.Create(context.Background(), CreateTaskInput{Title: "tracked", CreatorID: user.ID})
	require.NoError(t, err)
	return task
}

func TestTimeEntryService_StartAndStop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "alice", models.RoleEmployee)
	task := newTaskFor(t, env, user)

	entry, err := env.entries.Create(ctx, CreateTimeEntryInput{
		TaskID:    task.ID,
		UserID:    user.ID,
		StartTime: time.Now().Add(-2 * time.Minute),
	})
	require.NoError(t, err)
	assert.Nil(t, entry.EndTime)

	active, err := env.entries.Active(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, entry.ID, active.ID)

	end := time.Now()
	stopped, err := env.entries.Update(ctx, user.ID, entry.ID, models.TimeEntryPatch{EndTime: &end, Duration: intPtr(120)})
	require.NoError(t, err)
	assert.Equal(t, 120, stopped.Duration)

	active, err = env.entries.Active(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, active)

	logs, _, err := env.activity.ListForUser(ctx, user.ID, 0, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "time_entry.stopped", logs[0].Action)
}

func TestTimeEntryService_DurationDerivedFromEndTime(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "alice", models.RoleEmployee)
	task := newTaskFor(t, env, user)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entry, err := env.entries.Create(ctx, CreateTimeEntryInput{TaskID: task.ID, UserID: user.ID, StartTime: start})
	require.NoError(t, err)

	end := start.Add(90 * time.Second)
	updated, err := env.entries.Update(ctx, user.ID, entry.ID, models.TimeEntryPatch{EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Duration)

	closed, err := env.entries.Create(ctx, CreateTimeEntryInput{
		TaskID:    task.ID,
		UserID:    user.ID,
		StartTime: start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, 90, closed.Duration)
}

func TestTimeEntryService_SingleRunningTimer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "alice", models.RoleEmployee)
	other := env.register(t, "bob", models.RoleEmployee)
	task := newTaskFor(t, env, user)

	_, err := env.entries.Create(ctx, CreateTimeEntryInput{TaskID: task.ID, UserID: user.ID, StartTime: time.Now()})
	require.NoError(t, err)

	_, err = env.entries.Create(ctx, CreateTimeEntryInput{TaskID: task.ID, UserID: user.ID, StartTime: time.Now()})
	assert.ErrorIs(t, err, ErrTimerAlreadyRunning)

	// a finished entry is fine while the timer runs
	end := time.Now()
	_, err = env.entries.Create(ctx, CreateTimeEntryInput{TaskID: task.ID, UserID: user.ID, StartTime: end.Add(-time.Hour), EndTime: &end})
	assert.NoError(t, err)

	// timers are per user
	_, err = env.entries.Create(ctx, CreateTimeEntryInput{TaskID: task.ID, UserID: other.ID, StartTime: time.Now()})
	assert.NoError(t, err)
}

func TestTimeEntryService_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.register(t, "alice", models.RoleEmployee)
	task := newTaskFor(t, env, user)
	now := time.Now()
	before := now.Add(-time.Hour)

	var verr *ValidationError
	_, err := env.entries.Create(ctx, CreateTimeEntryInput{UserID: user.ID})
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	_, err = env.entries.Create(ctx, CreateTimeEntryInput{TaskID: task.ID, UserID: user.ID, StartTime: now, EndTime: &before})
	assert.ErrorAs(t, err, &verr)

	_, err = env.entries.Create(ctx, CreateTimeEntryInput{TaskID: "ghost", UserID: user.ID, StartTime: now})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = env.entries.Update(ctx, user.ID, "ghost", models.TimeEntryPatch{Duration: intPtr(1)})
	assert.ErrorIs(t, err, ErrTimeEntryNotFound)
}

func TestTimeEntryService_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice", models.RoleEmployee)
	bob := env.register(t, "bob", models.RoleEmployee)
	t1 := newTaskFor(t, env, alice)
	t2 := newTaskFor(t, env, alice)

	end := time.Now()
	for _, in := range []CreateTimeEntryInput{
		{TaskID: t1.ID, UserID: alice.ID, StartTime: end.Add(-3 * time.Hour), EndTime: &end},
		{TaskID: t2.ID, UserID: alice.ID, StartTime: end.Add(-2 * time.Hour), EndTime: &end},
		{TaskID: t1.ID, UserID: bob.ID, StartTime: end.Add(-1 * time.Hour), EndTime: &end},
	} {
		_, err := env.entries.Create(ctx, in)
		require.NoError(t, err)
	}

	byTask, err := env.entries.List(ctx, ListTimeEntriesInput{UserID: alice.ID, TaskID: t1.ID})
	require.NoError(t, err)
	assert.Len(t, byTask, 2)

	mine, err := env.entries.List(ctx, ListTimeEntriesInput{UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, t1.ID, mine[0].TaskID)
}
