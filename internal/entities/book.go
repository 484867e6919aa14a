package entities

import "time"

type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"index;size:200" json:"title"`
	Author     string    `gorm:"index;size:200" json:"author"`
	ISBN       *string   `gorm:"uniqueIndex;size:50" json:"isbn"`
	Stock      int       `gorm:"default:1" json:"stock"`
	CoverURL   string    `gorm:"size:2048" json:"cover_url,omitempty"`
	PdfURL     string    `gorm:"size:2048" json:"pdf_url,omitempty"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Populated on listing only, not a stored column.
	BookCount int64 `gorm:"-" json:"book_count"`
}

func (Book) TableName() string {
	return "books"
}

func (Category) TableName() string {
	return "categories"
}
