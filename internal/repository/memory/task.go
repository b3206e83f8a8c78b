package memory

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

type taskRepository struct {
	s *Store
}

// NewTaskRepository creates a TaskRepository over the store
func NewTaskRepository(s *Store) repository.TaskRepository {
	return &taskRepository{s: s}
}

func taskKey(t models.Task) (time.Time, string) { return t.CreatedAt, t.ID }

func (r *taskRepository) Create(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	task.ID = models.NewID()
	task.ApplyDefaults()
	task.CreatedAt = now
	task.UpdatedAt = now

	r.s.tasks[task.ID] = *task
	return nil
}

func (r *taskRepository) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (r *taskRepository) List(_ context.Context) ([]models.Task, error) {
	return r.filter(func(models.Task) bool { return true }), nil
}

func (r *taskRepository) ListByProject(_ context.Context, projectID string) ([]models.Task, error) {
	return r.filter(func(t models.Task) bool {
		return t.ProjectID != nil && *t.ProjectID == projectID
	}), nil
}

func (r *taskRepository) ListByAssignee(_ context.Context, userID string) ([]models.Task, error) {
	return r.filter(func(t models.Task) bool {
		return t.AssigneeID != nil && *t.AssigneeID == userID
	}), nil
}

func (r *taskRepository) filter(keep func(models.Task) bool) []models.Task {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, t := range r.s.tasks {
		if keep(t) {
			tasks = append(tasks, t)
		}
	}
	sortByCreated(tasks, taskKey)
	return tasks
}

func (r *taskRepository) Update(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	patch.Apply(&task)
	task.UpdatedAt = touch(task.UpdatedAt)
	r.s.tasks[id] = task
	return &task, nil
}

func (r *taskRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return false, nil
	}
	delete(r.s.tasks, id)
	return true, nil
}
