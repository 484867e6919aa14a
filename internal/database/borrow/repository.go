// Package borrow provides database operations for borrow records and the
// stock mutations paired with them. Lock-taking methods run against a
// transaction handle supplied by the caller; the ledger service owns the
// transaction boundary.
package borrow

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/imeelinew/paper-library/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindBookForUpdate loads a book under a row-level write lock.
func (r *Repository) FindBookForUpdate(tx *gorm.DB, id uint) (*entities.Book, error) {
	var book entities.Book
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindRecordForUpdate loads a borrow record under a row-level write lock.
func (r *Repository) FindRecordForUpdate(tx *gorm.DB, id uint) (*entities.BorrowRecord, error) {
	var record entities.BorrowRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// AdjustStock moves a book's stock by delta (negative on borrow, positive
// on return).
func (r *Repository) AdjustStock(tx *gorm.DB, bookID uint, delta int) error {
	return tx.Model(&entities.Book{}).
		Where("id = ?", bookID).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *Repository) CreateRecord(tx *gorm.DB, record *entities.BorrowRecord) error {
	return tx.Create(record).Error
}

// MarkReturned flips a record to returned and stamps the return date.
func (r *Repository) MarkReturned(tx *gorm.DB, id uint, returnDate time.Time) error {
	return tx.Model(&entities.BorrowRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      entities.BorrowStatusReturned,
			"return_date": returnDate,
		}).Error
}

// MarkOverdue bulk-updates every still-borrowed record whose due date is
// strictly before asOf. Idempotent; returned records are never touched.
func (r *Repository) MarkOverdue(asOf time.Time) (int64, error) {
	result := r.db.Model(&entities.BorrowRecord{}).
		Where("status = ? AND due_date < ?", entities.BorrowStatusBorrowed, asOf).
		Update("status", entities.BorrowStatusOverdue)
	return result.RowsAffected, result.Error
}

// GetEnriched loads a record with the display fields of its book and user.
func (r *Repository) GetEnriched(id uint) (*entities.BorrowRecord, error) {
	var record entities.BorrowRecord
	err := r.db.
		Preload("Book", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "author", "isbn")
		}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Query returns a page of enriched records ordered by borrow date
// descending, plus the total count for the filter.
func (r *Repository) Query(status entities.BorrowStatus, offset, limit int) ([]entities.BorrowRecord, int64, error) {
	var records []entities.BorrowRecord
	var total int64

	query := r.db.Model(&entities.BorrowRecord{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Book", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "author", "isbn")
		}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Order("borrow_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}
