package database

import (
	"fmt"

	"wenje/internal/models"

	"gorm.io/gorm"
)

// RegisteredModels lists every model migrated at startup, in dependency order.
func RegisteredModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	}
}

// Migrate runs schema auto-migration for all registered models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(RegisteredModels()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
