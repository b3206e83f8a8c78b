package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// compositeIndexes are the multi-column indexes struct tags do not express.
var compositeIndexes = []struct {
	table   string
	name    string
	columns string
}{
	// Active-timer lookup: user_id = ? AND end_time IS NULL
	{"time_entries", "idx_time_entries_user_end", "user_id, end_time"},
	// Activity feed: newest first per user
	{"activity_logs", "idx_activity_logs_user_created", "user_id, created_at"},
	// Task lists ordered by creation
	{"tasks", "idx_tasks_project_created", "project_id, created_at"},
}

// ActiveTimerIndex allows at most one running time entry per user. MySQL has
// no partial indexes, so there the rule rests on the repository check alone.
const ActiveTimerIndex = "idx_time_entries_one_active"

// AddIndexes adds the composite indexes that are not created by AutoMigrate
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	if db.Dialector.Name() == "mysql" || migrator.HasIndex("time_entries", ActiveTimerIndex) {
		return nil
	}
	sql := fmt.Sprintf("CREATE UNIQUE INDEX %s ON time_entries (user_id) WHERE end_time IS NULL", ActiveTimerIndex)
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to create index %s: %w", ActiveTimerIndex, err)
	}
	slog.Info("created index", "index", ActiveTimerIndex, "table", "time_entries")

	return nil
}
