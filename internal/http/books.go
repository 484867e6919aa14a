package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imeelinew/paper-library/internal/apperr"
	"github.com/imeelinew/paper-library/internal/audit"
	"github.com/imeelinew/paper-library/internal/auth"
	"github.com/imeelinew/paper-library/internal/database/books"
	"github.com/imeelinew/paper-library/internal/database/categories"
	"github.com/imeelinew/paper-library/internal/entities"
)

type BooksController struct {
	books      *books.Repository
	categories *categories.Repository
	audit      *audit.Service
}

func NewBooksController(bookRepo *books.Repository, categoryRepo *categories.Repository, auditService *audit.Service) *BooksController {
	return &BooksController{
		books:      bookRepo,
		categories: categoryRepo,
		audit:      auditService,
	}
}

type bookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	Stock      *int   `json:"stock"`
	CoverURL   string `json:"cover_url"`
	PdfURL     string `json:"pdf_url"`
	CategoryID *uint  `json:"category_id"`
}

// List handles GET /api/books. Public: keyword search over title, author
// and ISBN, optional category filter, paginated.
func (bc *BooksController) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	filter := books.ListFilter{
		Keyword: strings.TrimSpace(c.Query("keyword")),
		Offset:  (page - 1) * pageSize,
		Limit:   pageSize,
	}
	if raw := c.Query("categoryId"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(parsed)
			filter.CategoryID = &id
		}
	}

	list, total, err := bc.books.List(filter)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	respondOK(c, "ok", PagedList{
		List:       list,
		Pagination: buildPagination(total, page, pageSize),
	})
}

// Create handles POST /api/books.
func (bc *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	book, err := bc.buildBook(&entities.Book{Stock: 1}, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := bc.books.Create(book); err != nil {
		respondError(c, translateBookError(err))
		return
	}

	bc.recordAudit(c, "create_book", book)
	respondOK(c, "created", book)
}

// Update handles PUT /api/books/:id.
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, apperr.NotFound("Book not found"))
		} else {
			respondError(c, apperr.Internal(err))
		}
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	updated, err := bc.buildBook(book, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := bc.books.Update(updated); err != nil {
		respondError(c, translateBookError(err))
		return
	}

	bc.recordAudit(c, "update_book", updated)
	respondOK(c, "updated", updated)
}

// Delete handles DELETE /api/books/:id.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, apperr.NotFound("Book not found"))
		} else {
			respondError(c, apperr.Internal(err))
		}
		return
	}

	if err := bc.books.Delete(book.ID); err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	bc.recordAudit(c, "delete_book", book)
	respondOK(c, "deleted", nil)
}

// buildBook applies a normalized request payload onto the target entity.
// Title and author are mandatory; a referenced category must exist; stock
// is clamped to zero and defaults from whatever the target already holds.
func (bc *BooksController) buildBook(target *entities.Book, req bookRequest) (*entities.Book, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" {
		return nil, apperr.Validation("title and author are required")
	}

	if req.CategoryID != nil {
		exists, err := bc.categories.Exists(*req.CategoryID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if !exists {
			return nil, apperr.Validation("Category not found")
		}
	}

	target.Title = title
	target.Author = author
	target.ISBN = trimmedOrNil(req.ISBN)
	target.CoverURL = req.CoverURL
	target.PdfURL = req.PdfURL
	target.CategoryID = req.CategoryID
	if req.Stock != nil {
		stock := *req.Stock
		if stock < 0 {
			stock = 0
		}
		target.Stock = stock
	}
	return target, nil
}

func (bc *BooksController) recordAudit(c *gin.Context, action string, book *entities.Book) {
	if identity, ok := auth.GetIdentity(c); ok {
		bc.audit.Record(&identity.ID, action, fmt.Sprintf("#%d %s", book.ID, book.Title))
	}
}

func translateBookError(err error) error {
	if books.IsDuplicate(err) {
		return apperr.Validation("isbn already exists")
	}
	return apperr.Internal(err)
}

func trimmedOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
