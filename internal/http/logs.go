package http

import (
	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/apperr"
	"github.com/imeelinew/paper-library/internal/audit"
)

type LogsController struct {
	audit *audit.Service
}

func NewLogsController(auditService *audit.Service) *LogsController {
	return &LogsController{audit: auditService}
}

// List handles GET /api/logs.
func (lc *LogsController) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	entries, total, err := lc.audit.List((page-1)*pageSize, pageSize)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	respondOK(c, "ok", PagedList{
		List:       entries,
		Pagination: buildPagination(total, page, pageSize),
	})
}
