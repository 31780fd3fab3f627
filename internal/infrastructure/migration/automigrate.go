package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// AutoMigrateModels returns the models managed by gorm auto-migration,
// ordered so foreign-key targets are created first.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.SessionModel{},
		&models.PostModel{},
		&models.ContactMessageModel{},
	}
}

// Run applies the schema for all registered models.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	logger.Info("database schema migrated", "models", len(AutoMigrateModels()))
	return nil
}
