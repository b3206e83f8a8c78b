package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	activity *ActivityService
	drafter  TaskDrafter
}

// NewTaskService creates a new TaskService. drafter may be nil when no AI
// backend is configured.
func NewTaskService(taskRepo repository.TaskRepository, activity *ActivityService, drafter TaskDrafter) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		activity: activity,
		drafter:  drafter,
	}
}

// ListTasksInput selects one filter mode: by project when ProjectID is set,
// otherwise the tasks assigned to UserID.
type ListTasksInput struct {
	UserID    string
	ProjectID string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	Progress    *int
	ProjectID   *string
	AssigneeID  *string
	CreatorID   string
}

// List returns the tasks of a project, or the caller's assigned tasks
func (s *TaskService) List(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	var (
		tasks []models.Task
		err   error
	)
	if input.ProjectID != "" {
		tasks, err = s.taskRepo.ListByProject(ctx, input.ProjectID)
	} else {
		tasks, err = s.taskRepo.ListByAssignee(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create validates and stores a new task
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)

	var v fieldChecks
	v.check(input.Title != "", "title", "required", "title is required")
	v.check(input.Status == "" || input.Status.Valid(), "status", "oneof", "status must be one of: todo, in_progress, review, done")
	v.check(input.Priority == "" || input.Priority.Valid(), "priority", "oneof", "priority must be one of: low, medium, high, urgent")
	v.check(validPercent(input.Progress), "progress", "max", "progress must be between 0 and 100")
	if err := v.err(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		CreatedBy:   input.CreatorID,
	}
	if input.Progress != nil {
		task.Progress = *input.Progress
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activity.Record(ctx, input.CreatorID, models.EntityTask, task.ID, models.ActivityCreated,
		map[string]any{"title": task.Title})
	return task, nil
}

// Get returns a task by ID
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Update merges a patch into an existing task
func (s *TaskService) Update(ctx context.Context, actorID, id string, patch models.TaskPatch) (*models.Task, error) {
	var v fieldChecks
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
		v.check(trimmed != "", "title", "required", "title cannot be empty")
	}
	if patch.Status != nil {
		v.check(patch.Status.Valid(), "status", "oneof", "status must be one of: todo, in_progress, review, done")
	}
	if patch.Priority != nil {
		v.check(patch.Priority.Valid(), "priority", "oneof", "priority must be one of: low, medium, high, urgent")
	}
	v.check(validPercent(patch.Progress), "progress", "max", "progress must be between 0 and 100")
	if err := v.err(); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	var details map[string]any
	if patch.Status != nil {
		details = map[string]any{"status": string(*patch.Status)}
	}
	s.activity.Record(ctx, actorID, models.EntityTask, task.ID, models.ActivityUpdated, details)
	return task, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, actorID, id string) error {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}

	s.activity.Record(ctx, actorID, models.EntityTask, id, models.ActivityDeleted, nil)
	return nil
}

// GenerateDrafts uses AI to suggest tasks from free text
func (s *TaskService) GenerateDrafts(ctx context.Context, text string) ([]TaskDraft, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}

	text = strings.TrimSpace(text)
	var v fieldChecks
	v.check(text != "", "text", "required", "text is required")
	v.check(len(text) <= constants.MaxAIInputLength, "text", "max",
		fmt.Sprintf("text must be at most %d characters", constants.MaxAIInputLength))
	if err := v.err(); err != nil {
		return nil, err
	}

	drafts, err := s.drafter.DraftTasks(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	valid := make([]TaskDraft, 0, len(drafts))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		if !d.Priority.Valid() {
			d.Priority = models.TaskPriorityMedium
		}
		if d.DueDate != nil && d.DueDate.Before(cutoff) {
			d.DueDate = nil
		}
		valid = append(valid, d)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}
