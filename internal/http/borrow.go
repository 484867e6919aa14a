package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/apperr"
	"github.com/imeelinew/paper-library/internal/auth"
	"github.com/imeelinew/paper-library/internal/ledger"
)

type BorrowController struct {
	ledger *ledger.Service
}

func NewBorrowController(service *ledger.Service) *BorrowController {
	return &BorrowController{ledger: service}
}

// borrowRequest keeps days loosely typed so a client sending "7" or 7.0
// still borrows; anything that is not a positive integer falls back to the
// default duration.
type borrowRequest struct {
	BorrowerName    string `json:"borrower_name"`
	BorrowerContact string `json:"borrower_contact"`
	Days            any    `json:"days"`
}

// Borrow handles POST /api/books/:bookId/borrow.
func (bc *BorrowController) Borrow(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	identity, ok := auth.GetIdentity(c)
	if !ok {
		respondStatus(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req borrowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("invalid request body"))
			return
		}
	}

	record, err := bc.ledger.Borrow(ledger.BorrowInput{
		BookID:          bookID,
		BorrowerName:    req.BorrowerName,
		BorrowerContact: req.BorrowerContact,
		Days:            coerceDays(req.Days),
	}, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "borrowed", record)
}

// Return handles POST /api/borrow-records/:id/return.
func (bc *BorrowController) Return(c *gin.Context) {
	recordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	identity, ok := auth.GetIdentity(c)
	if !ok {
		respondStatus(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	record, err := bc.ledger.Return(recordID, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "returned", record)
}

// List handles GET /api/borrow-records. Runs the overdue sweep before
// querying, so the page always reflects the record states as of today.
func (bc *BorrowController) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	result, err := bc.ledger.ListRecords(c.Query("status"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "ok", PagedList{
		List:       result.Records,
		Pagination: buildPagination(result.Total, result.Page, result.PageSize),
	})
}
