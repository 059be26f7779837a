package db

import (
	"fmt"

	"fleetdash/internal/model"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(gdb *gorm.DB) error {
	models := []interface{}{
		&model.User{},
		&model.Server{},
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
