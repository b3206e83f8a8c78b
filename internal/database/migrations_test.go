package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow-api/internal/config"
	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestMigrate(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))

	migrator := db.Migrator()
	for _, model := range AllModels() {
		assert.True(t, migrator.HasTable(model))
	}
	for _, idx := range compositeIndexes {
		assert.True(t, migrator.HasIndex(idx.table, idx.name), idx.name)
	}
	assert.True(t, migrator.HasIndex(&models.ProjectMember{}, "idx_project_members_project_user"))

	// a second run must skip the existing indexes
	require.NoError(t, Migrate(db))
}

func TestMigrate_OneActiveTimerPerUser(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasIndex("time_entries", ActiveTimerIndex))

	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	require.NoError(t, db.Create(&models.TimeEntry{ID: "e1", TaskID: "t1", UserID: "u1", StartTime: start}).Error)
	require.NoError(t, db.Create(&models.TimeEntry{ID: "e2", TaskID: "t1", UserID: "u1", StartTime: start, EndTime: &end}).Error)
	require.NoError(t, db.Create(&models.TimeEntry{ID: "e3", TaskID: "t1", UserID: "u2", StartTime: start}).Error)

	// a second running entry for u1 bypasses the repository check
	err := db.Create(&models.TimeEntry{ID: "e4", TaskID: "t1", UserID: "u1", StartTime: end}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		dialect string
		wantErr bool
	}{
		{name: "sqlite", driver: config.StorageSQLite, dialect: "sqlite"},
		{name: "mysql", driver: config.StorageMySQL, dialect: "mysql"},
		{name: "postgres", driver: config.StoragePostgres, dialect: "postgres"},
		{name: "memory is not SQL", driver: config.StorageMemory, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				StorageDriver: tt.driver,
				SQLitePath:    ":memory:",
				DBHost:        "localhost",
				DBPort:        "5432",
				DBUser:        "taskflow",
				DBName:        "taskflow",
				DBSSLMode:     "disable",
			}

			dialector, err := dialectorFor(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, dialector.Name())
		})
	}
}
