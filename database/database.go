package database

import (
	"fmt"

	"gorm.io/gorm"

	"stocks-simulator/models"
)

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.StockPrice{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
