package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/entities"
)

type seedBook struct {
	title  string
	author string
	isbn   string
}

type seedGroup struct {
	category string
	books    []seedBook
}

var demoCatalog = []seedGroup{
	{
		category: "Software Engineering",
		books: []seedBook{
			{"Clean Code", "Robert C. Martin", "978-0-13-235088-4"},
			{"Introduction to Algorithms", "Thomas H. Cormen", "978-0-262-03384-8"},
			{"Computer Systems: A Programmer's Perspective", "Randal E. Bryant", "978-0-13-409266-9"},
			{"Refactoring", "Martin Fowler", "978-0-13-475759-9"},
			{"The Mythical Man-Month", "Frederick P. Brooks Jr.", "978-0-201-83595-3"},
		},
	},
	{
		category: "Literature",
		books: []seedBook{
			{"To Live", "Yu Hua", "978-0-307-42879-8"},
			{"One Hundred Years of Solitude", "Gabriel García Márquez", "978-0-06-088328-7"},
			{"Norwegian Wood", "Haruki Murakami", "978-0-375-70402-4"},
			{"Walden", "Henry David Thoreau", "978-0-691-09612-9"},
		},
	},
	{
		category: "Fiction",
		books: []seedBook{
			{"1984", "George Orwell", "978-0-452-28423-4"},
			{"The Great Gatsby", "F. Scott Fitzgerald", "978-0-7432-7356-5"},
			{"To Kill a Mockingbird", "Harper Lee", "978-0-06-112008-4"},
			{"Les Misérables", "Victor Hugo", "978-0-451-41943-9"},
		},
	},
}

// SeedDemoData ensures the demo categories and books exist. Idempotent:
// books are matched by ISBN, categories by name.
func (d *Database) SeedDemoData() error {
	for _, group := range demoCatalog {
		category, err := d.findOrCreateCategory(group.category)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", group.category, err)
		}

		for _, b := range group.books {
			if err := d.findOrCreateBook(b, category.ID); err != nil {
				return fmt.Errorf("failed to seed book %s: %w", b.title, err)
			}
		}
	}
	log.Printf("Ensured demo categories and books")
	return nil
}

func (d *Database) findOrCreateCategory(name string) (*entities.Category, error) {
	var category entities.Category
	err := d.DB.Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = entities.Category{Name: name}
		err = d.DB.Create(&category).Error
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (d *Database) findOrCreateBook(b seedBook, categoryID uint) error {
	isbn := b.isbn
	var book entities.Book
	err := d.DB.Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		book = entities.Book{
			Title:      b.title,
			Author:     b.author,
			ISBN:       &isbn,
			Stock:      5,
			CategoryID: &categoryID,
		}
		return d.DB.Create(&book).Error
	}
	if err != nil {
		return err
	}

	if book.CategoryID == nil || *book.CategoryID != categoryID {
		return d.DB.Model(&book).Update("category_id", categoryID).Error
	}
	return nil
}
