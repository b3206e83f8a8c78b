package memory

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

type projectRepository struct {
	s *Store
}

// NewProjectRepository creates a ProjectRepository over the store
func NewProjectRepository(s *Store) repository.ProjectRepository {
	return &projectRepository{s: s}
}

func projectKey(p models.Project) (time.Time, string) { return p.CreatedAt, p.ID }

func (r *projectRepository) Create(_ context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	project.ID = models.NewID()
	project.ApplyDefaults()
	project.CreatedAt = now
	project.UpdatedAt = now

	r.s.projects[project.ID] = *project
	return nil
}

func (r *projectRepository) FindByID(_ context.Context, id string) (*models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	project, ok := r.s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &project, nil
}

func (r *projectRepository) ListByUser(_ context.Context, userID string) ([]models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{})
	projects := make([]models.Project, 0)

	for _, p := range r.s.projects {
		if p.CreatedBy == userID {
			seen[p.ID] = struct{}{}
			projects = append(projects, p)
		}
	}

	for _, m := range r.s.projectMembers {
		if m.UserID != userID {
			continue
		}
		if _, dup := seen[m.ProjectID]; dup {
			continue
		}
		p, ok := r.s.projects[m.ProjectID]
		if !ok {
			continue
		}
		seen[p.ID] = struct{}{}
		projects = append(projects, p)
	}

	sortByCreated(projects, projectKey)
	return projects, nil
}

func (r *projectRepository) Update(_ context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	project, ok := r.s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	patch.Apply(&project)
	project.UpdatedAt = touch(project.UpdatedAt)
	r.s.projects[id] = project
	return &project, nil
}

func (r *projectRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return false, nil
	}

	delete(r.s.projects, id)
	for memberID, m := range r.s.projectMembers {
		if m.ProjectID == id {
			delete(r.s.projectMembers, memberID)
		}
	}
	return true, nil
}

func (r *projectRepository) AddMember(_ context.Context, projectID, userID, role string) (*models.ProjectMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.projectMembers {
		if m.ProjectID == projectID && m.UserID == userID {
			return nil, repository.ErrAlreadyProjectMember
		}
	}

	if role == "" {
		role = models.DefaultProjectMemberRole
	}
	member := models.ProjectMember{
		ID:        models.NewID(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	r.s.projectMembers[member.ID] = member
	return &member, nil
}

func (r *projectRepository) ListMembers(_ context.Context, projectID string) ([]models.ProjectMemberWithUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	members := make([]models.ProjectMemberWithUser, 0)
	for _, m := range r.s.projectMembers {
		if m.ProjectID != projectID {
			continue
		}
		user, ok := r.s.users[m.UserID]
		if !ok {
			continue
		}
		members = append(members, models.ProjectMemberWithUser{ProjectMember: m, User: user})
	}

	sortByCreated(members, func(m models.ProjectMemberWithUser) (time.Time, string) { return m.JoinedAt, m.ID })
	return members, nil
}
