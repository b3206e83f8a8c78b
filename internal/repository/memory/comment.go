package memory

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

type commentRepository struct {
	s *Store
}

// NewCommentRepository creates a CommentRepository over the store
func NewCommentRepository(s *Store) repository.CommentRepository {
	return &commentRepository{s: s}
}

func (r *commentRepository) Create(_ context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment.ID = models.NewID()
	comment.CreatedAt = time.Now()
	r.s.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepository) ListByTask(_ context.Context, taskID string) ([]models.CommentWithUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := make([]models.CommentWithUser, 0)
	for _, c := range r.s.comments {
		if c.TaskID != taskID {
			continue
		}
		user, ok := r.s.users[c.UserID]
		if !ok {
			continue
		}
		comments = append(comments, models.CommentWithUser{Comment: c, User: user})
	}

	sortByCreated(comments, func(c models.CommentWithUser) (time.Time, string) { return c.CreatedAt, c.ID })
	return comments, nil
}
