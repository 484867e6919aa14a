// Package books provides catalog database operations for books.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/entities"
)

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows a catalog listing. Keyword matches title, author and
// ISBN with a case-insensitive LIKE.
type ListFilter struct {
	Keyword    string
	CategoryID *uint
	Offset     int
	Limit      int
}

// List returns a page of books ordered by id ascending plus the total count
// for the filter.
func (r *Repository) List(filter ListFilter) ([]entities.Book, int64, error) {
	var books []entities.Book
	var total int64

	query := r.db.Model(&entities.Book{})
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(
			"title LIKE ? OR author LIKE ? OR isbn LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").
		Order("id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&books).Error
	return books, total, err
}

func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Category").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

func (r *Repository) Update(book *entities.Book) error {
	return r.db.Save(book).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// IsDuplicate reports whether err is a unique-constraint violation
// (duplicate ISBN on create/update).
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
