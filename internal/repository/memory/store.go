// Package memory is the process-local Entity Store: every collection is a map
// keyed by id, guarded by a single RWMutex. Lookups by other fields are full
// scans except username and email, which keep unique indexes.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// Store holds all collections for the lifetime of the process.
type Store struct {
	mu sync.RWMutex

	users     map[string]models.User
	usernames map[string]string
	emails    map[string]string

	projects       map[string]models.Project
	projectMembers map[string]models.ProjectMember
	tasks          map[string]models.Task
	timeEntries    map[string]models.TimeEntry
	comments       map[string]models.Comment
	activityLogs   map[string]models.ActivityLog
	userSettings   map[string]models.UserSettings
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:          make(map[string]models.User),
		usernames:      make(map[string]string),
		emails:         make(map[string]string),
		projects:       make(map[string]models.Project),
		projectMembers: make(map[string]models.ProjectMember),
		tasks:          make(map[string]models.Task),
		timeEntries:    make(map[string]models.TimeEntry),
		comments:       make(map[string]models.Comment),
		activityLogs:   make(map[string]models.ActivityLog),
		userSettings:   make(map[string]models.UserSettings),
	}
}

// New creates an empty store and returns the repositories backed by it.
func New() *repository.Repositories {
	return NewStore().Repositories()
}

// Repositories returns one repository per entity family sharing this store.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:        NewUserRepository(s),
		Projects:     NewProjectRepository(s),
		Tasks:        NewTaskRepository(s),
		TimeEntries:  NewTimeEntryRepository(s),
		Comments:     NewCommentRepository(s),
		ActivityLogs: NewActivityLogRepository(s),
		Settings:     NewSettingsRepository(s),
	}
}

// touch returns the new updatedAt for a record last updated at prev; it never
// moves backwards even if the wall clock does.
func touch(prev time.Time) time.Time {
	now := time.Now()
	if now.Before(prev) {
		return prev
	}
	return now
}

// sortByCreated orders items oldest first, breaking ties by id.
func sortByCreated[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ci, idi := key(items[i])
		cj, idj := key(items[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return idi < idj
	})
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
