package books

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imeelinew/paper-library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	t.Helper()
	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Category{}, &entities.Book{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return db, NewRepository(db), cleanup
}

func strPtr(s string) *string { return &s }

func TestRepository_List(t *testing.T) {
	t.Run("filters by keyword over title, author and isbn", func(t *testing.T) {
		_, repo, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, repo.Create(&entities.Book{Title: "The Go Programming Language", Author: "Donovan", ISBN: strPtr("9780134190440"), Stock: 1}))
		require.NoError(t, repo.Create(&entities.Book{Title: "Learning Python", Author: "Lutz", ISBN: strPtr("9781449355739"), Stock: 1}))
		require.NoError(t, repo.Create(&entities.Book{Title: "Concurrency in Practice", Author: "Goetz", Stock: 1}))

		found, total, err := repo.List(ListFilter{Keyword: "Go", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, found, 2)

		found, total, err = repo.List(ListFilter{Keyword: "9781449", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Learning Python", found[0].Title)
	})

	t.Run("filters by category", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		fiction := &entities.Category{Name: "Fiction"}
		require.NoError(t, db.Create(fiction).Error)

		require.NoError(t, repo.Create(&entities.Book{Title: "Dune", Author: "Herbert", CategoryID: &fiction.ID, Stock: 1}))
		require.NoError(t, repo.Create(&entities.Book{Title: "SICP", Author: "Abelson", Stock: 1}))

		found, total, err := repo.List(ListFilter{CategoryID: &fiction.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Equal(t, "Dune", found[0].Title)
		require.NotNil(t, found[0].Category)
		assert.Equal(t, "Fiction", found[0].Category.Name)
	})

	t.Run("paginates ordered by id", func(t *testing.T) {
		_, repo, cleanup := setupTestDB(t)
		defer cleanup()

		for _, title := range []string{"A", "B", "C", "D", "E"} {
			require.NoError(t, repo.Create(&entities.Book{Title: title, Author: "X", Stock: 1}))
		}

		found, total, err := repo.List(ListFilter{Offset: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, found, 2)
		assert.Equal(t, "C", found[0].Title)
		assert.Equal(t, "D", found[1].Title)
	})
}

func TestRepository_CreateDuplicateISBN(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Book{Title: "First", Author: "X", ISBN: strPtr("9780000000001"), Stock: 1}))

	err := repo.Create(&entities.Book{Title: "Second", Author: "Y", ISBN: strPtr("9780000000001"), Stock: 1})
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
}

func TestRepository_NilISBNIsNotUnique(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Books without an ISBN must coexist; NULL never collides.
	require.NoError(t, repo.Create(&entities.Book{Title: "First", Author: "X", Stock: 1}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Second", Author: "Y", Stock: 1}))
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Draft", Author: "X", Stock: 1}
	require.NoError(t, repo.Create(book))

	book.Title = "Final"
	book.Stock = 4
	require.NoError(t, repo.Update(book))

	loaded, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", loaded.Title)
	assert.Equal(t, 4, loaded.Stock)

	require.NoError(t, repo.Delete(book.ID))
	_, err = repo.GetByID(book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
