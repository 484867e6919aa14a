// Package audit provides database operations for the audit log.
package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Append(entry *entities.LogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

// List retrieves paginated log entries, newest first, joined with the
// acting user's display fields.
func (r *Repository) List(offset, limit int) ([]entities.LogEntry, int64, error) {
	var entries []entities.LogEntry
	var total int64

	if err := r.db.Model(&entities.LogEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// DeleteOlderThan removes log entries created before the cutoff and returns
// how many were deleted.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.LogEntry{})
	return result.RowsAffected, result.Error
}
