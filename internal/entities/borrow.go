package entities

import "time"

type BorrowStatus string

const (
	BorrowStatusBorrowed BorrowStatus = "borrowed"
	BorrowStatusOverdue  BorrowStatus = "overdue"
	BorrowStatusReturned BorrowStatus = "returned"
)

// BorrowRecord tracks one borrowed copy of a book from checkout to return.
// Dates are calendar dates normalized to midnight UTC.
type BorrowRecord struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	BookID          uint         `gorm:"index" json:"book_id"`
	UserID          uint         `gorm:"index" json:"user_id"`
	BorrowDate      time.Time    `gorm:"index" json:"borrow_date"`
	DueDate         time.Time    `gorm:"index" json:"due_date"`
	ReturnDate      *time.Time   `json:"return_date"`
	BorrowerName    *string      `gorm:"size:100" json:"borrower_name"`
	BorrowerContact *string      `gorm:"size:100" json:"borrower_contact"`
	Status          BorrowStatus `gorm:"index;size:20;default:'borrowed'" json:"status"`
	Book            *Book        `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User            *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (BorrowRecord) TableName() string {
	return "borrow_records"
}
