package repository

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	now := time.Now()
	project.ID = models.NewID()
	project.ApplyDefaults()
	project.CreatedAt = now
	project.UpdatedAt = now
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// ListByUser lists projects the user owns or is a member of
func (r *GormProjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	db := r.db.WithContext(ctx)
	memberOf := db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)

	var projects []models.Project
	if err := db.Where("created_by = ? OR id IN (?)", userID, memberOf).
		Order("created_at ASC, id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update merges the patch into the stored project
func (r *GormProjectRepository) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		patch.Apply(&project)
		project.UpdatedAt = time.Now()
		return tx.Save(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete deletes a project and its memberships in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(ctx context.Context, projectID, userID, role string) (*models.ProjectMember, error) {
	if role == "" {
		role = models.DefaultProjectMemberRole
	}
	member := &models.ProjectMember{
		ID:        models.NewID(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ? AND user_id = ?", projectID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyProjectMember
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers lists all members of a project with their users
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID string) ([]models.ProjectMemberWithUser, error) {
	db := r.db.WithContext(ctx)

	var members []models.ProjectMember
	if err := db.Where("project_id = ?", projectID).
		Order("joined_at ASC, id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := usersByID(db, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]models.ProjectMemberWithUser, 0, len(members))
	for _, m := range members {
		user, ok := users[m.UserID]
		if !ok {
			continue
		}
		result = append(result, models.ProjectMemberWithUser{ProjectMember: m, User: user})
	}
	return result, nil
}

// usersByID loads the given users keyed by id; unknown ids are simply absent.
func usersByID(db *gorm.DB, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []models.User
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}
