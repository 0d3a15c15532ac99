package database

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"library-api/pkg/models"
)

// InitLibraryDB opens the sqlite file at path, creating its directory and
// the books table when missing. Safe to call against an existing file.
//
// The pool is capped at one open connection: sqlite allows a single writer
// at a time, and the cap queues requests in the pool instead of surfacing
// database-is-locked errors.
func InitLibraryDB(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&models.Book{}); err != nil {
		return nil, err
	}

	log.Println("Database connection established successfully")
	return db, nil
}
