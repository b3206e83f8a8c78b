package memory

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

type userRepository struct {
	s *Store
}

// NewUserRepository creates a UserRepository over the store
func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.usernames[user.Username]; taken {
		return repository.ErrUsernameTaken
	}
	if _, taken := r.s.emails[user.Email]; taken {
		return repository.ErrEmailTaken
	}

	now := time.Now()
	user.ID = models.NewID()
	user.Password = hashed
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	r.s.users[user.ID] = *user
	r.s.usernames[user.Username] = user.ID
	r.s.emails[user.Email] = user.ID
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.usernames[username]
	r.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.emails[email]
	r.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) Update(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var hashed string
	if patch.Password != nil {
		var err error
		if hashed, err = utils.HashPassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	oldUsername, oldEmail := user.Username, user.Email
	patch.Apply(&user)
	if patch.Password != nil {
		user.Password = hashed
	}

	if user.Username != oldUsername {
		if _, taken := r.s.usernames[user.Username]; taken {
			return nil, repository.ErrUsernameTaken
		}
	}
	if user.Email != oldEmail {
		if _, taken := r.s.emails[user.Email]; taken {
			return nil, repository.ErrEmailTaken
		}
	}

	user.UpdatedAt = touch(user.UpdatedAt)
	r.s.users[id] = user

	if user.Username != oldUsername {
		delete(r.s.usernames, oldUsername)
		r.s.usernames[user.Username] = id
	}
	if user.Email != oldEmail {
		delete(r.s.emails, oldEmail)
		r.s.emails[user.Email] = id
	}

	return &user, nil
}

func (r *userRepository) List(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sortByCreated(users, func(u models.User) (time.Time, string) { return u.CreatedAt, u.ID })
	return users, nil
}
