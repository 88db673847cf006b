package db

import (
	"log"
	"os"
	"path/filepath"

	"gocart/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens (creating if necessary) the sqlite database at dbPath,
// migrates the schema and returns the handle. Callers own the handle and
// pass it down explicitly.
func Connect(dbPath string) (*gorm.DB, error) {
	// Ensure the directory exists (create if it doesn't)
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	database, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Println("Database connected successfully at", dbPath)

	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrate creates or updates the schema for all domain models.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.Review{},
	)
}
