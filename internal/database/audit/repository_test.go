package audit

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

	"github.com/imeelinew/paper-library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	t.Helper()
	dbPath := "./test_audit_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

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
	return db, NewRepository(db), cleanup
}

func TestRepository_AppendAndList(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := &entities.User{Username: "admin", PasswordHash: "x", Role: entities.UserRoleAdmin}
	require.NoError(t, db.Create(user).Error)

	require.NoError(t, repo.Append(&entities.LogEntry{UserID: &user.ID, Action: "create_book", Target: "#1 Dune"}))
	require.NoError(t, repo.Append(&entities.LogEntry{UserID: &user.ID, Action: "borrow_book", Target: "#1 Dune"}))

	entries, total, err := repo.List(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)

	// Newest first, with the acting user's display fields attached.
	assert.Equal(t, "borrow_book", entries[0].Action)
	assert.Equal(t, "create_book", entries[1].Action)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "admin", entries[0].User.Username)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRepository_ListPaginates(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(&entities.LogEntry{Action: "login", Target: "admin"}))
	}

	entries, total, err := repo.List(3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, entries, 2)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.LogEntry{Action: "login", Target: "admin"}
	old.CreatedAt = time.Now().AddDate(0, 0, -45)
	require.NoError(t, repo.Append(old))
	require.NoError(t, repo.Append(&entities.LogEntry{Action: "login", Target: "admin"}))

	deleted, err := repo.DeleteOlderThan(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, total, err := repo.List(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
}
