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

// ProjectService handles project and membership business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	activity    *ActivityService
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, activity *ActivityService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		activity:    activity,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
	Status      models.ProjectStatus
	Deadline    *time.Time
	Progress    *int
	CreatorID   string
}

// AddMemberInput represents input for adding a user to a project
type AddMemberInput struct {
	ProjectID string
	UserID    string
	Role      string
	ActorID   string
}

// ListForUser returns the projects the user created or is a member of
func (s *ProjectService) ListForUser(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Create validates and stores a new project owned by the creator
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	input.Name = strings.TrimSpace(input.Name)

	var v fieldChecks
	v.check(input.Name != "", "name", "required", "name is required")
	v.check(input.Status == "" || input.Status.Valid(), "status", "oneof", "status must be one of: planning, active, completed")
	v.check(validPercent(input.Progress), "progress", "max", "progress must be between 0 and 100")
	if err := v.err(); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Deadline:    input.Deadline,
		CreatedBy:   input.CreatorID,
	}
	if input.Progress != nil {
		project.Progress = *input.Progress
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.activity.Record(ctx, input.CreatorID, models.EntityProject, project.ID, models.ActivityCreated,
		map[string]any{"name": project.Name})
	return project, nil
}

// Get returns a project by ID
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Update merges a patch into an existing project
func (s *ProjectService) Update(ctx context.Context, actorID, id string, patch models.ProjectPatch) (*models.Project, error) {
	var v fieldChecks
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
		v.check(trimmed != "", "name", "required", "name cannot be empty")
	}
	if patch.Status != nil {
		v.check(patch.Status.Valid(), "status", "oneof", "status must be one of: planning, active, completed")
	}
	v.check(validPercent(patch.Progress), "progress", "max", "progress must be between 0 and 100")
	if err := v.err(); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.activity.Record(ctx, actorID, models.EntityProject, project.ID, models.ActivityUpdated, nil)
	return project, nil
}

// Delete removes a project together with its memberships
func (s *ProjectService) Delete(ctx context.Context, actorID, id string) error {
	deleted, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		return ErrProjectNotFound
	}

	s.activity.Record(ctx, actorID, models.EntityProject, id, models.ActivityDeleted, nil)
	return nil
}

// AddMember grants a user access to a project. Only the project creator or a
// scrum master may add members.
func (s *ProjectService) AddMember(ctx context.Context, input AddMemberInput) (*models.ProjectMember, error) {
	project, err := s.Get(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if project.CreatedBy != input.ActorID {
		actor, err := s.userRepo.FindByID(ctx, input.ActorID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		if actor == nil || actor.Role != models.RoleScrumMaster {
			return nil, ErrForbidden
		}
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	member, err := s.projectRepo.AddMember(ctx, project.ID, input.UserID, strings.TrimSpace(input.Role))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyProjectMember):
			return nil, ErrAlreadyProjectMember
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProjectNotFound
		default:
			return nil, fmt.Errorf("failed to add project member: %w", err)
		}
	}

	s.activity.Record(ctx, input.ActorID, models.EntityProject, project.ID, models.ActivityMemberAdded,
		map[string]any{"userId": input.UserID, "role": member.Role})
	return member, nil
}

// ListMembers returns the members of a project with their user records
func (s *ProjectService) ListMembers(ctx context.Context, projectID string) ([]models.ProjectMemberWithUser, error) {
	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}
