package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/audit"
	"github.com/imeelinew/paper-library/internal/auth"
	"github.com/imeelinew/paper-library/internal/config"
	"github.com/imeelinew/paper-library/internal/database"
	auditrepo "github.com/imeelinew/paper-library/internal/database/audit"
	"github.com/imeelinew/paper-library/internal/database/books"
	"github.com/imeelinew/paper-library/internal/database/borrow"
	"github.com/imeelinew/paper-library/internal/database/categories"
	"github.com/imeelinew/paper-library/internal/database/users"
	http_controllers "github.com/imeelinew/paper-library/internal/http"
	"github.com/imeelinew/paper-library/internal/ledger"
	"github.com/imeelinew/paper-library/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting paper-library v%s", version)

	if cfg.Auth.JWTSecret == "" {
		log.Printf("WARNING: JWT_SECRET is not set. Authenticated endpoints will reject every request until it is configured.")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Seed the default admin and, when enabled, the demo catalog.
	passwordHash, err := auth.HashPassword(cfg.Admin.Password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	if err := db.EnsureAdmin(cfg.Admin.Username, passwordHash); err != nil {
		log.Fatalf("Failed to ensure default admin: %v", err)
	}
	if cfg.Seed.DemoData {
		if err := db.SeedDemoData(); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Repositories
	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)
	borrowRepo := borrow.NewRepository(db.DB)
	auditRepo := auditrepo.NewRepository(db.DB)

	// Services
	auditService := audit.NewService(auditRepo)
	authService := auth.NewService(userRepo, cfg.Auth)
	ledgerService := ledger.NewService(db.DB, borrowRepo, auditService)

	// Audit retention cleanup
	cleanup := scheduler.NewAuditCleanupScheduler(auditRepo, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
	if err := cleanup.Start(); err != nil {
		log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:     db,
		AuthService:  authService,
		Ledger:       ledgerService,
		AuditService: auditService,
		Books:        bookRepo,
		Categories:   categoryRepo,
		JWTSecret:    cfg.Auth.JWTSecret,
		Version:      version,
	})

	onShutdown := func(ctx context.Context) {
		cleanup.Stop()
	}

	Serve(router, cfg, onShutdown)
}
