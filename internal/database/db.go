package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justsurfingit/job-board/internal/models"
)

// Connect opens the postgres database at dsn and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info().Msg("database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of every stored model.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("running migrations")
	if err := db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}, &models.ContactMessage{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
