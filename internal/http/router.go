package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/audit"
	"github.com/imeelinew/paper-library/internal/auth"
	"github.com/imeelinew/paper-library/internal/database"
	"github.com/imeelinew/paper-library/internal/database/books"
	"github.com/imeelinew/paper-library/internal/database/categories"
	"github.com/imeelinew/paper-library/internal/entities"
	"github.com/imeelinew/paper-library/internal/ledger"
)

// RouterConfig carries every dependency the router wires into controllers.
type RouterConfig struct {
	Database     *database.Database
	AuthService  *auth.Service
	Ledger       *ledger.Service
	AuditService *audit.Service
	Books        *books.Repository
	Categories   *categories.Repository
	JWTSecret    string
	Version      string
}

// NewRouter creates the HTTP router with all endpoints under /api.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.Books, cfg.Categories, cfg.AuditService)
	categoriesController := NewCategoriesController(cfg.Categories, cfg.AuditService)
	borrowController := NewBorrowController(cfg.Ledger)
	logsController := NewLogsController(cfg.AuditService)

	adminOnly := []gin.HandlerFunc{
		auth.RequireAuth(cfg.JWTSecret),
		auth.RequireRoles(entities.UserRoleAdmin, entities.UserRoleSuperadmin),
	}

	api := router.Group("/api")
	{
		api.GET("/health", health.Status)
		api.POST("/auth/login", authController.Login)

		api.GET("/books", booksController.List)
		api.GET("/categories", categoriesController.List)

		admin := api.Group("", adminOnly...)
		{
			admin.POST("/books", booksController.Create)
			admin.PUT("/books/:id", booksController.Update)
			admin.DELETE("/books/:id", booksController.Delete)

			admin.POST("/categories", categoriesController.Create)
			admin.PUT("/categories/:id", categoriesController.Update)
			admin.DELETE("/categories/:id", categoriesController.Delete)

			admin.GET("/borrow-records", borrowController.List)
			admin.POST("/books/:bookId/borrow", borrowController.Borrow)
			admin.POST("/borrow-records/:id/return", borrowController.Return)

			admin.GET("/logs", logsController.List)
		}
	}

	return router
}
