package db

import (
	"log"
	"os"

	"wisper/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the database and migrates the ledger tables. TranslateError is
// on so a unique-index violation surfaces as gorm.ErrDuplicatedKey, which
// the vote engine relies on for its insert-if-absent path.
func Init() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=wisper port=5432 sslmode=disable"
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	return conn, nil
}

// Migrate creates/updates the four ledger tables plus users.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Wisper{},
		&models.Vote{},
		&models.Comment{},
		&models.Notification{},
	)
}
