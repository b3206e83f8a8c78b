package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskflow-api/internal/database"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/repository/memory"
	"github.com/yukikurage/taskflow-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoreContractSuite runs the same behavioural checks against every backend
type StoreContractSuite struct {
	suite.Suite
	newRepos func(t *testing.T) *repository.Repositories
	repos    *repository.Repositories
	ctx      context.Context
}

func (s *StoreContractSuite) SetupTest() {
	s.repos = s.newRepos(s.T())
	s.ctx = context.Background()
}

func (s *StoreContractSuite) createUser(username string) *models.User {
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	}
	s.Require().NoError(s.repos.Users.Create(s.ctx, user))
	return user
}

func (s *StoreContractSuite) createProject(name, owner string) *models.Project {
	project := &models.Project{Name: name, CreatedBy: owner}
	s.Require().NoError(s.repos.Projects.Create(s.ctx, project))
	return project
}

func (s *StoreContractSuite) TestUserCreateHashesPassword() {
	user := s.createUser("alice")

	s.NotEmpty(user.ID)
	s.Equal(models.RoleEmployee, user.Role)
	s.NotEqual("password123", user.Password)
	s.True(utils.CheckPassword("password123", user.Password))

	found, err := s.repos.Users.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)

	found, err = s.repos.Users.FindByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)
}

func (s *StoreContractSuite) TestUserUniqueness() {
	s.createUser("alice")

	dupName := &models.User{Username: "alice", Email: "other@example.com", Password: "password123", FirstName: "A", LastName: "B"}
	s.ErrorIs(s.repos.Users.Create(s.ctx, dupName), repository.ErrUsernameTaken)

	dupEmail := &models.User{Username: "other", Email: "alice@example.com", Password: "password123", FirstName: "A", LastName: "B"}
	s.ErrorIs(s.repos.Users.Create(s.ctx, dupEmail), repository.ErrEmailTaken)

	bob := s.createUser("bob")
	taken := "alice"
	_, err := s.repos.Users.Update(s.ctx, bob.ID, models.UserPatch{Username: &taken})
	s.ErrorIs(err, repository.ErrUsernameTaken)
}

func (s *StoreContractSuite) TestUserUpdateRehashesPassword() {
	user := s.createUser("alice")
	newPassword := "changed-secret"
	first := "Alicia"

	updated, err := s.repos.Users.Update(s.ctx, user.ID, models.UserPatch{
		Password:  &newPassword,
		FirstName: &first,
		Avatar:    models.Some("https://example.com/a.png"),
	})
	s.Require().NoError(err)
	s.Equal("Alicia", updated.FirstName)
	s.Equal("User", updated.LastName)
	s.Require().NotNil(updated.Avatar)
	s.True(utils.CheckPassword("changed-secret", updated.Password))

	_, err = s.repos.Users.Update(s.ctx, "missing", models.UserPatch{FirstName: &first})
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *StoreContractSuite) TestFindMissingReturnsNotFound() {
	_, err := s.repos.Users.FindByID(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.repos.Projects.FindByID(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.repos.Tasks.FindByID(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.repos.TimeEntries.FindByID(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
	_, err = s.repos.Settings.FindByUser(s.ctx, "missing")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *StoreContractSuite) TestProjectsByUserAreUniqueAndOrdered() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	owned := s.createProject("Owned", alice.ID)
	time.Sleep(2 * time.Millisecond)
	shared := s.createProject("Shared", bob.ID)
	time.Sleep(2 * time.Millisecond)
	s.createProject("Hidden", bob.ID)

	_, err := s.repos.Projects.AddMember(s.ctx, shared.ID, alice.ID, "")
	s.Require().NoError(err)
	_, err = s.repos.Projects.AddMember(s.ctx, owned.ID, alice.ID, "lead")
	s.Require().NoError(err)

	projects, err := s.repos.Projects.ListByUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(projects, 2)
	s.Equal(owned.ID, projects[0].ID)
	s.Equal(shared.ID, projects[1].ID)

	_, err = s.repos.Projects.AddMember(s.ctx, shared.ID, alice.ID, "")
	s.ErrorIs(err, repository.ErrAlreadyProjectMember)

	members, err := s.repos.Projects.ListMembers(s.ctx, shared.ID)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(models.DefaultProjectMemberRole, members[0].Role)
	s.Equal("alice", members[0].User.Username)
}

func (s *StoreContractSuite) TestProjectDefaultsUpdateAndDelete() {
	alice := s.createUser("alice")
	project := s.createProject("Site", alice.ID)
	s.Equal(models.ProjectStatusPlanning, project.Status)
	s.Equal(0, project.Progress)

	status := models.ProjectStatusActive
	updated, err := s.repos.Projects.Update(s.ctx, project.ID, models.ProjectPatch{
		Status:      &status,
		Description: models.Some("landing pages"),
	})
	s.Require().NoError(err)
	s.Equal(models.ProjectStatusActive, updated.Status)
	s.Equal("Site", updated.Name)
	s.Require().NotNil(updated.Description)

	updated, err = s.repos.Projects.Update(s.ctx, project.ID, models.ProjectPatch{Description: models.Null[string]()})
	s.Require().NoError(err)
	s.Nil(updated.Description)

	ok, err := s.repos.Projects.Delete(s.ctx, project.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.repos.Projects.Delete(s.ctx, project.ID)
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.repos.Projects.Update(s.ctx, project.ID, models.ProjectPatch{Status: &status})
	s.ErrorIs(err, repository.ErrNotFound)
}

// A creates T1 in P, B marks it done, listing by project shows T1 done.
func (s *StoreContractSuite) TestTaskCompletedAcrossUsers() {
	alice := s.createUser("alice")
	s.createUser("bob")
	project := s.createProject("P", alice.ID)

	task := &models.Task{Title: "T1", ProjectID: &project.ID, AssigneeID: &alice.ID, CreatedBy: alice.ID}
	s.Require().NoError(s.repos.Tasks.Create(s.ctx, task))
	s.Equal(models.TaskStatusTodo, task.Status)
	s.Equal(models.TaskPriorityMedium, task.Priority)

	done := models.TaskStatusDone
	_, err := s.repos.Tasks.Update(s.ctx, task.ID, models.TaskPatch{Status: &done})
	s.Require().NoError(err)

	tasks, err := s.repos.Tasks.ListByProject(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal(task.ID, tasks[0].ID)
	s.Equal(models.TaskStatusDone, tasks[0].Status)

	assigned, err := s.repos.Tasks.ListByAssignee(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(assigned, 1)

	all, err := s.repos.Tasks.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *StoreContractSuite) TestTaskUpdateClearsAndDelete() {
	alice := s.createUser("alice")
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	task := &models.Task{Title: "T", AssigneeID: &alice.ID, DueDate: &due, CreatedBy: alice.ID}
	s.Require().NoError(s.repos.Tasks.Create(s.ctx, task))

	updated, err := s.repos.Tasks.Update(s.ctx, task.ID, models.TaskPatch{AssigneeID: models.Null[string]()})
	s.Require().NoError(err)
	s.Nil(updated.AssigneeID)
	s.NotNil(updated.DueDate)
	s.False(updated.UpdatedAt.Before(updated.CreatedAt))

	ok, err := s.repos.Tasks.Delete(s.ctx, task.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.repos.Tasks.Delete(s.ctx, task.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StoreContractSuite) TestSingleActiveTimer() {
	alice := s.createUser("alice")
	task := &models.Task{Title: "T", CreatedBy: alice.ID}
	s.Require().NoError(s.repos.Tasks.Create(s.ctx, task))

	_, err := s.repos.TimeEntries.FindActive(s.ctx, alice.ID)
	s.ErrorIs(err, repository.ErrNotFound)

	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	running := &models.TimeEntry{TaskID: task.ID, UserID: alice.ID, StartTime: start}
	s.Require().NoError(s.repos.TimeEntries.Create(s.ctx, running))

	second := &models.TimeEntry{TaskID: task.ID, UserID: alice.ID, StartTime: start.Add(time.Hour)}
	s.ErrorIs(s.repos.TimeEntries.Create(s.ctx, second), repository.ErrActiveTimeEntryExists)

	end := start.Add(30 * time.Minute)
	closed := &models.TimeEntry{TaskID: task.ID, UserID: alice.ID, StartTime: start.Add(-time.Hour), EndTime: &end, Duration: 1800}
	s.Require().NoError(s.repos.TimeEntries.Create(s.ctx, closed))

	active, err := s.repos.TimeEntries.FindActive(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(running.ID, active.ID)

	stop := start.Add(time.Hour)
	duration := 3600
	_, err = s.repos.TimeEntries.Update(s.ctx, running.ID, models.TimeEntryPatch{EndTime: &stop, Duration: &duration})
	s.Require().NoError(err)

	_, err = s.repos.TimeEntries.FindActive(s.ctx, alice.ID)
	s.ErrorIs(err, repository.ErrNotFound)

	entries, err := s.repos.TimeEntries.ListByTask(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Len(entries, 2)

	entries, err = s.repos.TimeEntries.ListByUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(closed.ID, entries[0].ID)
}

func (s *StoreContractSuite) TestCommentsJoinAuthors() {
	alice := s.createUser("alice")
	task := &models.Task{Title: "T", CreatedBy: alice.ID}
	s.Require().NoError(s.repos.Tasks.Create(s.ctx, task))

	s.Require().NoError(s.repos.Comments.Create(s.ctx, &models.Comment{TaskID: task.ID, UserID: alice.ID, Content: "first"}))
	s.Require().NoError(s.repos.Comments.Create(s.ctx, &models.Comment{TaskID: task.ID, UserID: "ghost", Content: "orphan"}))

	comments, err := s.repos.Comments.ListByTask(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 1)
	s.Equal("first", comments[0].Content)
	s.Equal("alice", comments[0].User.Username)
}

func (s *StoreContractSuite) TestActivityPagination() {
	alice := s.createUser("alice")
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.repos.ActivityLogs.Create(s.ctx, &models.ActivityLog{
			UserID:     alice.ID,
			Action:     "task.created",
			EntityType: models.EntityTask,
			EntityID:   models.NewID(),
			Details:    map[string]any{"index": float64(i)},
		}))
		time.Sleep(2 * time.Millisecond)
	}

	page, total, err := s.repos.ActivityLogs.ListByUser(s.ctx, alice.ID, 0, 2)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(page, 2)
	s.Equal(float64(4), page[0].Details["index"])

	page, _, err = s.repos.ActivityLogs.ListByUser(s.ctx, alice.ID, 4, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(float64(0), page[0].Details["index"])

	page, _, err = s.repos.ActivityLogs.ListByUser(s.ctx, alice.ID, 10, 2)
	s.Require().NoError(err)
	s.Empty(page)

	// a negative offset reads from the start
	page, _, err = s.repos.ActivityLogs.ListByUser(s.ctx, alice.ID, -5, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(float64(4), page[0].Details["index"])
}

func (s *StoreContractSuite) TestSettingsUpsert() {
	alice := s.createUser("alice")
	dark := "dark"

	settings, err := s.repos.Settings.Upsert(s.ctx, alice.ID, models.SettingsPatch{Theme: &dark})
	s.Require().NoError(err)
	s.Equal("dark", settings.Theme)
	s.Equal(models.DefaultTimezone, settings.Timezone)
	s.Equal(models.DefaultNotifications(), settings.Notifications)

	tz := "Europe/Berlin"
	settings, err = s.repos.Settings.Upsert(s.ctx, alice.ID, models.SettingsPatch{
		Timezone:      &tz,
		Notifications: map[string]bool{"email": false},
	})
	s.Require().NoError(err)
	s.Equal("dark", settings.Theme)

	found, err := s.repos.Settings.FindByUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal("Europe/Berlin", found.Timezone)
	s.Equal(map[string]bool{"email": false}, found.Notifications)
}

func (s *StoreContractSuite) TestCreatedIDsAreUnique() {
	const n = 5
	seen := map[string]map[string]bool{}
	track := func(collection, id string) {
		s.Require().NotEmpty(id, collection)
		if seen[collection] == nil {
			seen[collection] = map[string]bool{}
		}
		s.False(seen[collection][id], "%s id %s issued twice", collection, id)
		seen[collection][id] = true
	}

	owner := s.createUser("owner")
	track("users", owner.ID)
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		user := s.createUser(fmt.Sprintf("user%d", i))
		track("users", user.ID)

		project := s.createProject(fmt.Sprintf("P%d", i), owner.ID)
		track("projects", project.ID)

		member, err := s.repos.Projects.AddMember(s.ctx, project.ID, user.ID, "")
		s.Require().NoError(err)
		track("members", member.ID)

		task := &models.Task{Title: fmt.Sprintf("T%d", i), ProjectID: &project.ID, CreatedBy: owner.ID}
		s.Require().NoError(s.repos.Tasks.Create(s.ctx, task))
		track("tasks", task.ID)

		end := start.Add(time.Hour)
		entry := &models.TimeEntry{TaskID: task.ID, UserID: user.ID, StartTime: start, EndTime: &end, Duration: 3600}
		s.Require().NoError(s.repos.TimeEntries.Create(s.ctx, entry))
		track("timeEntries", entry.ID)

		comment := &models.Comment{TaskID: task.ID, UserID: user.ID, Content: "note"}
		s.Require().NoError(s.repos.Comments.Create(s.ctx, comment))
		track("comments", comment.ID)

		log := &models.ActivityLog{UserID: user.ID, Action: "task.created", EntityType: models.EntityTask, EntityID: task.ID}
		s.Require().NoError(s.repos.ActivityLogs.Create(s.ctx, log))
		track("activityLogs", log.ID)

		settings, err := s.repos.Settings.Upsert(s.ctx, user.ID, models.SettingsPatch{})
		s.Require().NoError(err)
		track("settings", settings.ID)
	}

	s.Len(seen["users"], n+1)
	for _, collection := range []string{"projects", "members", "tasks", "timeEntries", "comments", "activityLogs", "settings"} {
		s.Len(seen[collection], n, collection)
	}
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{
		newRepos: func(*testing.T) *repository.Repositories { return memory.New() },
	})
}

func TestGormStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{
		newRepos: func(t *testing.T) *repository.Repositories {
			db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
				Logger:         logger.Default.LogMode(logger.Silent),
				TranslateError: true,
			})
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				t.Fatalf("failed to get sql.DB: %v", err)
			}
			// every pooled connection would get its own empty :memory: database
			sqlDB.SetMaxOpenConns(1)
			t.Cleanup(func() { sqlDB.Close() })

			if err := database.Migrate(db); err != nil {
				t.Fatalf("failed to migrate: %v", err)
			}
			return repository.NewGormRepositories(db)
		},
	})
}
