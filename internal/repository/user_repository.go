package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create hashes the password and creates the user, rejecting duplicate usernames and emails
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, "", user.Username, user.Email); err != nil {
			return err
		}

		now := time.Now()
		user.ID = models.NewID()
		user.Password = hashed
		if user.Role == "" {
			user.Role = models.RoleEmployee
		}
		user.CreatedAt = now
		user.UpdatedAt = now

		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.duplicateUser(ctx, "", user.Username, user.Email)
	}
	return err
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Update merges the patch into the stored user
func (r *GormUserRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var hashed string
	if patch.Password != nil {
		var err error
		if hashed, err = utils.HashPassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		oldUsername, oldEmail := user.Username, user.Email
		patch.Apply(&user)
		if patch.Password != nil {
			user.Password = hashed
		}

		username, email := "", ""
		if user.Username != oldUsername {
			username = user.Username
		}
		if user.Email != oldEmail {
			email = user.Email
		}
		if err := ensureUnique(tx, id, username, email); err != nil {
			return err
		}

		user.UpdatedAt = time.Now()
		return tx.Save(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, r.duplicateUser(ctx, id, user.Username, user.Email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users
func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// duplicateUser resolves a unique-index violation, raised when a concurrent
// write slipped past ensureUnique, into the matching sentinel.
func (r *GormUserRepository) duplicateUser(ctx context.Context, exceptID, username, email string) error {
	if err := ensureUnique(r.db.WithContext(ctx), exceptID, username, email); err != nil {
		return err
	}
	return ErrUsernameTaken
}

// ensureUnique checks that no user other than exceptID holds the given
// username or email. Empty values are not checked.
func ensureUnique(tx *gorm.DB, exceptID, username, email string) error {
	check := func(column, value string, taken error) error {
		if value == "" {
			return nil
		}
		var count int64
		q := tx.Model(&models.User{}).Where(column+" = ?", value)
		if exceptID != "" {
			q = q.Where("id <> ?", exceptID)
		}
		if err := q.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check %s: %w", column, err)
		}
		if count > 0 {
			return taken
		}
		return nil
	}

	if err := check("username", username, ErrUsernameTaken); err != nil {
		return err
	}
	return check("email", email, ErrEmailTaken)
}
