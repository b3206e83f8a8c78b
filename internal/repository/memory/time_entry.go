package memory

import (
	"context"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

type timeEntryRepository struct {
	s *Store
}

// NewTimeEntryRepository creates a TimeEntryRepository over the store
func NewTimeEntryRepository(s *Store) repository.TimeEntryRepository {
	return &timeEntryRepository{s: s}
}

func (r *timeEntryRepository) Create(_ context.Context, entry *models.TimeEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if entry.Active() && r.activeLocked(entry.UserID) != nil {
		return repository.ErrActiveTimeEntryExists
	}

	entry.ID = models.NewID()
	entry.CreatedAt = time.Now()
	r.s.timeEntries[entry.ID] = *entry
	return nil
}

func (r *timeEntryRepository) FindByID(_ context.Context, id string) (*models.TimeEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entry, ok := r.s.timeEntries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (r *timeEntryRepository) ListByTask(_ context.Context, taskID string) ([]models.TimeEntry, error) {
	return r.filter(func(e models.TimeEntry) bool { return e.TaskID == taskID }), nil
}

func (r *timeEntryRepository) ListByUser(_ context.Context, userID string) ([]models.TimeEntry, error) {
	return r.filter(func(e models.TimeEntry) bool { return e.UserID == userID }), nil
}

func (r *timeEntryRepository) filter(keep func(models.TimeEntry) bool) []models.TimeEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]models.TimeEntry, 0)
	for _, e := range r.s.timeEntries {
		if keep(e) {
			entries = append(entries, e)
		}
	}
	sortByCreated(entries, func(e models.TimeEntry) (time.Time, string) { return e.StartTime, e.ID })
	return entries
}

func (r *timeEntryRepository) Update(_ context.Context, id string, patch models.TimeEntryPatch) (*models.TimeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry, ok := r.s.timeEntries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	patch.Apply(&entry)
	r.s.timeEntries[id] = entry
	return &entry, nil
}

func (r *timeEntryRepository) FindActive(_ context.Context, userID string) (*models.TimeEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entry := r.activeLocked(userID)
	if entry == nil {
		return nil, repository.ErrNotFound
	}
	return entry, nil
}

// activeLocked must be called with the store lock held.
func (r *timeEntryRepository) activeLocked(userID string) *models.TimeEntry {
	var found *models.TimeEntry
	for _, e := range r.s.timeEntries {
		if e.UserID != userID || !e.Active() {
			continue
		}
		if found == nil || e.StartTime.Before(found.StartTime) ||
			(e.StartTime.Equal(found.StartTime) && e.ID < found.ID) {
			found = &e
		}
	}
	return found
}
