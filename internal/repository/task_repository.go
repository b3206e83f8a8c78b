package repository

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	now := time.Now()
	task.ID = models.NewID()
	task.ApplyDefaults()
	task.CreatedAt = now
	task.UpdatedAt = now
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

// List returns every task
func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	return r.find(r.db.WithContext(ctx))
}

// ListByProject returns the tasks of a project
func (r *GormTaskRepository) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.find(r.db.WithContext(ctx).Where("project_id = ?", projectID))
}

// ListByAssignee returns the tasks assigned to a user
func (r *GormTaskRepository) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return r.find(r.db.WithContext(ctx).Where("assignee_id = ?", userID))
}

func (r *GormTaskRepository) find(query *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task
	if err := query.Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update merges the patch into the stored task
func (r *GormTaskRepository) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		patch.Apply(&task)
		task.UpdatedAt = time.Now()
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
