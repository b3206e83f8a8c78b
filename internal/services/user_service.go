package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// UserService handles user listing and profile updates.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update applies a profile patch to targetID on behalf of actorID. Only the
// user themself or a scrum master may do this.
func (s *UserService) Update(ctx context.Context, actorID, targetID string, patch models.UserPatch) (*models.User, error) {
	if actorID != targetID {
		actor, err := s.userRepo.FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrForbidden
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		if actor.Role != models.RoleScrumMaster {
			return nil, ErrForbidden
		}
	}

	if err := validateUserPatch(&patch); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, targetID, patch)
	if err != nil {
		return nil, mapUserWriteError(err, "failed to update user")
	}
	return user, nil
}

func validateUserPatch(patch *models.UserPatch) error {
	var v fieldChecks
	if patch.Username != nil {
		trimmed := strings.TrimSpace(*patch.Username)
		patch.Username = &trimmed
		v.check(trimmed != "", "username", "required", "username cannot be empty")
	}
	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		patch.Email = &trimmed
		v.check(validEmail(trimmed), "email", "email", "email must be a valid email address")
	}
	if patch.Password != nil {
		v.check(len(*patch.Password) >= constants.MinPasswordLength, "password", "min",
			fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	}
	if patch.FirstName != nil {
		v.check(strings.TrimSpace(*patch.FirstName) != "", "firstName", "required", "firstName cannot be empty")
	}
	if patch.LastName != nil {
		v.check(strings.TrimSpace(*patch.LastName) != "", "lastName", "required", "lastName cannot be empty")
	}
	if patch.Role != nil {
		v.check(patch.Role.Valid(), "role", "oneof", "role must be one of: scrum_master, employee")
	}
	return v.err()
}
