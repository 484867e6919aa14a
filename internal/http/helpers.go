package http

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/apperr"
)

// Response is the uniform envelope for every API reply. Code is 0 on
// success and mirrors the HTTP status on failure; Data is null on failure.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PagedList is the Data shape of every paginated endpoint.
type PagedList struct {
	List       any        `json:"list"`
	Pagination Pagination `json:"pagination"`
}

func buildPagination(total int64, page, pageSize int) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// --- Response helpers ---

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: message, Data: data})
}

// respondError translates a service failure into the envelope. Internal
// errors are logged; expected business failures are not.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	status := kind.HTTPStatus()
	c.JSON(status, Response{Code: status, Message: err.Error(), Data: nil})
}

func respondStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Code: status, Message: message, Data: nil})
}

// --- Parameter parsing ---

// parseIDParam extracts an unsigned integer ID from URL parameters.
// Responds with a 400 envelope and returns false on malformed input.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondStatus(c, http.StatusBadRequest, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// normalizePositiveInt parses a query value as a positive integer, falling
// back to a default on anything else. Lenient: bad paging input never
// produces an error.
func normalizePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// pageParams reads page/pageSize query parameters with the shared defaults
// and the pageSize ceiling.
func pageParams(c *gin.Context) (page, pageSize int) {
	page = normalizePositiveInt(c.Query("page"), 1)
	pageSize = normalizePositiveInt(c.Query("pageSize"), 10)
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// coerceDays turns a loosely-typed JSON value into a borrow duration.
// Returns 0 (meaning "use the default") for anything that is not a positive
// integer: absent values, fractions, negative numbers, unparseable strings.
func coerceDays(value any) int {
	switch v := value.(type) {
	case float64:
		if v > 0 && v == math.Trunc(v) {
			return int(v)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 0
}
