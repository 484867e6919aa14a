// Package ledger owns the borrow/return lifecycle and the stock invariant
// on books. All mutations run inside a single transaction with row-level
// locking: a stock decrement commits together with its borrow record or not
// at all, and stock never goes negative.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/apperr"
	"github.com/imeelinew/paper-library/internal/audit"
	"github.com/imeelinew/paper-library/internal/auth"
	"github.com/imeelinew/paper-library/internal/database/borrow"
	"github.com/imeelinew/paper-library/internal/entities"
)

const (
	// DefaultBorrowDays is used when the caller omits the duration or
	// supplies something that does not coerce to a positive integer.
	// Lenient by design: invalid input defaults instead of erroring.
	DefaultBorrowDays = 14

	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Service struct {
	db    *gorm.DB
	repo  *borrow.Repository
	audit *audit.Service
}

func NewService(db *gorm.DB, repo *borrow.Repository, auditService *audit.Service) *Service {
	return &Service{db: db, repo: repo, audit: auditService}
}

// BorrowInput carries the caller-supplied fields of a borrow operation.
type BorrowInput struct {
	BookID          uint
	BorrowerName    string
	BorrowerContact string
	Days            int
}

// RecordPage is one page of enriched borrow records together with the
// pagination arithmetic the caller asked for.
type RecordPage struct {
	Records    []entities.BorrowRecord
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// Borrow checks out one copy of a book. The stock check, the decrement and
// the record creation happen atomically under a write lock on the book row,
// so concurrent borrows of the last copy cannot both succeed.
func (s *Service) Borrow(input BorrowInput, identity auth.Identity) (*entities.BorrowRecord, error) {
	days := input.Days
	if days <= 0 {
		days = DefaultBorrowDays
	}

	record := &entities.BorrowRecord{
		UserID:          identity.ID,
		BorrowDate:      today(),
		Status:          entities.BorrowStatusBorrowed,
		BorrowerName:    trimmedOrNil(input.BorrowerName),
		BorrowerContact: trimmedOrNil(input.BorrowerContact),
	}
	record.DueDate = addDays(record.BorrowDate, days)

	var bookTitle string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		book, err := s.repo.FindBookForUpdate(tx, input.BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Book not found")
			}
			return apperr.Internal(err)
		}
		if book.Stock <= 0 {
			return apperr.Conflict("No stock left for this book")
		}
		bookTitle = book.Title

		if err := s.repo.AdjustStock(tx, book.ID, -1); err != nil {
			return apperr.Internal(err)
		}

		record.BookID = book.ID
		if err := s.repo.CreateRecord(tx, record); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(&identity.ID, "borrow_book", fmt.Sprintf("#%d %s", record.BookID, bookTitle))

	return s.enrich(record.ID)
}

// Return closes out a borrow record and puts the copy back in stock. Locks
// the record first, then its book, mirroring the lock order documented on
// Borrow so the two cannot deadlock.
func (s *Service) Return(recordID uint, identity auth.Identity) (*entities.BorrowRecord, error) {
	var bookID uint
	var bookTitle string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindRecordForUpdate(tx, recordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Borrow record not found")
			}
			return apperr.Internal(err)
		}
		if record.Status == entities.BorrowStatusReturned {
			return apperr.Conflict("Book already returned")
		}

		book, err := s.repo.FindBookForUpdate(tx, record.BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Book not found")
			}
			return apperr.Internal(err)
		}
		bookID = book.ID
		bookTitle = book.Title

		if err := s.repo.MarkReturned(tx, record.ID, today()); err != nil {
			return apperr.Internal(err)
		}
		if err := s.repo.AdjustStock(tx, book.ID, +1); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(&identity.ID, "return_book", fmt.Sprintf("#%d %s", bookID, bookTitle))

	return s.enrich(recordID)
}

// ListRecords sweeps overdue records, then returns a page filtered by
// status and ordered by borrow date descending. The sweep is idempotent and
// cheap when nothing is due, so it runs on every call; record state is
// always correct relative to "now" at the moment it is observed.
func (s *Service) ListRecords(status string, page, pageSize int) (*RecordPage, error) {
	if _, err := s.repo.MarkOverdue(today()); err != nil {
		return nil, apperr.Internal(err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	records, total, err := s.repo.Query(
		entities.BorrowStatus(strings.TrimSpace(status)),
		(page-1)*pageSize,
		pageSize,
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &RecordPage{
		Records:    records,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) enrich(recordID uint) (*entities.BorrowRecord, error) {
	record, err := s.repo.GetEnriched(recordID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return record, nil
}

func trimmedOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
