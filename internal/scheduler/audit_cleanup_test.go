package scheduler

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imeelinew/paper-library/internal/database/audit"
	"github.com/imeelinew/paper-library/internal/entities"
)

func setupTestRepo(t *testing.T) (*gorm.DB, *audit.Repository, func()) {
	t.Helper()
	dbPath := "./test_scheduler_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.LogEntry{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return db, audit.NewRepository(db), cleanup
}

func TestScheduler_StartStop(t *testing.T) {
	_, repo, cleanup := setupTestRepo(t)
	defer cleanup()

	s := NewAuditCleanupScheduler(repo, "0 3 * * *", 30)
	require.NoError(t, s.Start())
	// Starting twice is a no-op.
	require.NoError(t, s.Start())
	s.Stop()
	s.Stop()
}

func TestScheduler_DisabledWithoutRetention(t *testing.T) {
	_, repo, cleanup := setupTestRepo(t)
	defer cleanup()

	s := NewAuditCleanupScheduler(repo, "0 3 * * *", 0)
	require.NoError(t, s.Start())
	assert.False(t, s.isRunning)
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	_, repo, cleanup := setupTestRepo(t)
	defer cleanup()

	s := NewAuditCleanupScheduler(repo, "not a cron expression", 30)
	assert.Error(t, s.Start())
}

func TestScheduler_RunCleanup(t *testing.T) {
	db, repo, cleanup := setupTestRepo(t)
	defer cleanup()

	old := &entities.LogEntry{Action: "login", Target: "admin", CreatedAt: time.Now().AddDate(0, 0, -45)}
	require.NoError(t, db.Create(old).Error)
	recent := &entities.LogEntry{Action: "login", Target: "admin", CreatedAt: time.Now()}
	require.NoError(t, db.Create(recent).Error)

	s := NewAuditCleanupScheduler(repo, "0 3 * * *", 30)
	s.runCleanup()

	var count int64
	require.NoError(t, db.Model(&entities.LogEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var remaining entities.LogEntry
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, recent.ID, remaining.ID)
}
