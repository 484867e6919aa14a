// Package categories provides database operations for book categories.
package categories

import (
	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all categories ordered by name, each with its book count.
func (r *Repository) List() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	for i := range categories {
		var count int64
		if err := r.db.Model(&entities.Book{}).
			Where("category_id = ?", categories[i].ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		categories[i].BookCount = count
	}
	return categories, nil
}

func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(category *entities.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) Update(category *entities.Category) error {
	return r.db.Save(category).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Category{}, id).Error
}

// CountBooks returns how many books reference the category. Deletion is
// blocked by the caller while this is non-zero.
func (r *Repository) CountBooks(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
