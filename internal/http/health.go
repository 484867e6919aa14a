package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/database"
)

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, Response{
				Code:    http.StatusServiceUnavailable,
				Message: "database unavailable",
				Data:    nil,
			})
			return
		}
	}

	respondOK(c, "ok", gin.H{
		"service": "paper-library",
		"version": h.version,
		"time":    time.Now().Format(time.RFC3339),
	})
}
