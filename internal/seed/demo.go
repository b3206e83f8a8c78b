// Package seed loads the demo team into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

const (
	DemoPassword         = "password123"
	DemoScrumMasterLogin = "johndoe"
	DemoEmployeeLogin    = "sarahjohnson"
)

type demoTask struct {
	title       string
	description string
	status      models.TaskStatus
	priority    models.TaskPriority
	dueInDays   int
	progress    int
	project     int
	toEmployee  bool
}

var demoTasks = []demoTask{
	{"Implement OAuth integration", "Set up social login with Google and GitHub", models.TaskStatusTodo, models.TaskPriorityHigh, 9, 0, 0, true},
	{"Fix payment gateway bug", "Critical issue affecting checkout process", models.TaskStatusInProgress, models.TaskPriorityUrgent, 7, 60, 0, false},
	{"Database optimization", "Optimize queries for better performance", models.TaskStatusReview, models.TaskPriorityMedium, 11, 90, 0, true},
	{"User interface mockups", "Create high-fidelity designs for dashboard", models.TaskStatusDone, models.TaskPriorityLow, 4, 100, 1, true},
}

// Demo creates two users, two projects and four tasks. It does nothing when
// the scrum master account already exists.
func Demo(ctx context.Context, repos *repository.Repositories, logger *slog.Logger) error {
	if _, err := repos.Users.FindByUsername(ctx, DemoScrumMasterLogin); err == nil {
		logger.Debug("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check demo user: %w", err)
	}

	john := &models.User{
		Username:  DemoScrumMasterLogin,
		Email:     "john.doe@taskflow.com",
		Password:  DemoPassword,
		FirstName: "John",
		LastName:  "Doe",
		Role:      models.RoleScrumMaster,
	}
	sarah := &models.User{
		Username:  DemoEmployeeLogin,
		Email:     "sarah.johnson@taskflow.com",
		Password:  DemoPassword,
		FirstName: "Sarah",
		LastName:  "Johnson",
		Role:      models.RoleEmployee,
	}
	for _, u := range []*models.User{john, sarah} {
		if err := repos.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to create demo user %s: %w", u.Username, err)
		}
	}

	now := time.Now()
	projects := []*models.Project{
		{
			Name:        "E-commerce Platform",
			Description: strPtr("Building a modern e-commerce platform with React and Node.js"),
			Status:      models.ProjectStatusActive,
			Deadline:    timePtr(now.AddDate(0, 0, 60)),
			Progress:    75,
			CreatedBy:   john.ID,
		},
		{
			Name:        "Mobile App Redesign",
			Description: strPtr("Redesigning the mobile application for better user experience"),
			Status:      models.ProjectStatusActive,
			Deadline:    timePtr(now.AddDate(0, 0, 84)),
			Progress:    45,
			CreatedBy:   john.ID,
		},
	}
	for _, p := range projects {
		if err := repos.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create demo project %s: %w", p.Name, err)
		}
		if _, err := repos.Projects.AddMember(ctx, p.ID, sarah.ID, ""); err != nil {
			return fmt.Errorf("failed to add demo member: %w", err)
		}
	}

	for _, dt := range demoTasks {
		assignee := john.ID
		if dt.toEmployee {
			assignee = sarah.ID
		}
		task := &models.Task{
			Title:       dt.title,
			Description: strPtr(dt.description),
			Status:      dt.status,
			Priority:    dt.priority,
			DueDate:     timePtr(now.AddDate(0, 0, dt.dueInDays)),
			Progress:    dt.progress,
			ProjectID:   &projects[dt.project].ID,
			AssigneeID:  &assignee,
			CreatedBy:   john.ID,
		}
		if err := repos.Tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create demo task %q: %w", dt.title, err)
		}
	}

	logger.Info("seeded demo data", "users", 2, "projects", len(projects), "tasks", len(demoTasks))
	return nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
