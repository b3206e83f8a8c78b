package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// TimeEntryService handles time tracking business logic
type TimeEntryService struct {
	entryRepo repository.TimeEntryRepository
	taskRepo  repository.TaskRepository
	activity  *ActivityService
}

// NewTimeEntryService creates a new TimeEntryService
func NewTimeEntryService(entryRepo repository.TimeEntryRepository, taskRepo repository.TaskRepository, activity *ActivityService) *TimeEntryService {
	return &TimeEntryService{
		entryRepo: entryRepo,
		taskRepo:  taskRepo,
		activity:  activity,
	}
}

// ListTimeEntriesInput selects entries of a task when TaskID is set,
// otherwise those recorded by UserID.
type ListTimeEntriesInput struct {
	UserID string
	TaskID string
}

// CreateTimeEntryInput represents input for recording time. A nil EndTime
// starts a running timer.
type CreateTimeEntryInput struct {
	TaskID      string
	UserID      string
	StartTime   time.Time
	EndTime     *time.Time
	Duration    *int
	Description *string
}

// List returns time entries of a task, or the caller's entries
func (s *TimeEntryService) List(ctx context.Context, input ListTimeEntriesInput) ([]models.TimeEntry, error) {
	var (
		entries []models.TimeEntry
		err     error
	)
	if input.TaskID != "" {
		entries, err = s.entryRepo.ListByTask(ctx, input.TaskID)
	} else {
		entries, err = s.entryRepo.ListByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// Create records a time entry. Starting a second running timer for the same
// user is rejected with ErrTimerAlreadyRunning.
func (s *TimeEntryService) Create(ctx context.Context, input CreateTimeEntryInput) (*models.TimeEntry, error) {
	input.TaskID = strings.TrimSpace(input.TaskID)

	var v fieldChecks
	v.check(input.TaskID != "", "taskId", "required", "taskId is required")
	v.check(!input.StartTime.IsZero(), "startTime", "required", "startTime is required")
	v.check(input.EndTime == nil || !input.EndTime.Before(input.StartTime), "endTime", "gtefield", "endTime must not be before startTime")
	v.check(input.Duration == nil || *input.Duration >= 0, "duration", "min", "duration must not be negative")
	if err := v.err(); err != nil {
		return nil, err
	}

	if _, err := s.taskRepo.FindByID(ctx, input.TaskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	entry := &models.TimeEntry{
		TaskID:      input.TaskID,
		UserID:      input.UserID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Description: input.Description,
	}
	switch {
	case input.Duration != nil:
		entry.Duration = *input.Duration
	case input.EndTime != nil:
		entry.Duration = elapsedSeconds(input.StartTime, *input.EndTime)
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrActiveTimeEntryExists) {
			return nil, ErrTimerAlreadyRunning
		}
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	verb := models.ActivityCreated
	if entry.Active() {
		verb = models.ActivityStarted
	}
	s.activity.Record(ctx, input.UserID, models.EntityTimeEntry, entry.ID, verb,
		map[string]any{"taskId": entry.TaskID})
	return entry, nil
}

// Update merges a patch into an entry. Supplying an endTime without a
// duration derives the duration from the interval.
func (s *TimeEntryService) Update(ctx context.Context, actorID, id string, patch models.TimeEntryPatch) (*models.TimeEntry, error) {
	current, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("failed to find time entry: %w", err)
	}

	start := current.StartTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}

	var v fieldChecks
	v.check(patch.EndTime == nil || !patch.EndTime.Before(start), "endTime", "gtefield", "endTime must not be before startTime")
	v.check(patch.Duration == nil || *patch.Duration >= 0, "duration", "min", "duration must not be negative")
	if err := v.err(); err != nil {
		return nil, err
	}

	if patch.EndTime != nil && patch.Duration == nil {
		d := elapsedSeconds(start, *patch.EndTime)
		patch.Duration = &d
	}

	entry, err := s.entryRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	verb := models.ActivityUpdated
	if current.Active() && !entry.Active() {
		verb = models.ActivityStopped
	}
	s.activity.Record(ctx, actorID, models.EntityTimeEntry, entry.ID, verb,
		map[string]any{"taskId": entry.TaskID, "duration": entry.Duration})
	return entry, nil
}

// Active returns the user's running entry, or nil when no timer is running
func (s *TimeEntryService) Active(ctx context.Context, userID string) (*models.TimeEntry, error) {
	entry, err := s.entryRepo.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active time entry: %w", err)
	}
	return entry, nil
}

func elapsedSeconds(start, end time.Time) int {
	return int(end.Sub(start) / time.Second)
}
