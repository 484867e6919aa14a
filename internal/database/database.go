package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imeelinew/paper-library/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Book{},
		&entities.BorrowRecord{},
		&entities.LogEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureAdmin creates the default administrator account if the username is
// not taken yet. The password arrives pre-hashed so this package stays free
// of crypto concerns.
func (d *Database) EnsureAdmin(username, passwordHash string) error {
	var existing entities.User
	err := d.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleAdmin,
	}
	if err := d.DB.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	log.Printf("Default admin %q is ready", username)
	return nil
}
