package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cupid-backend/internal/config"
)

// AllModels is the migration set, ordered parents-first.
var AllModels = []any{
	&Gender{}, &User{}, &Preference{}, &PreferredGender{},
	&Swipe{}, &Match{}, &Conversation{}, &Message{},
	&BlockRelation{}, &Picture{}, &Report{},
}

// NewDB initializes the database connection using DSN from config.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// AutoMigrate ensures schema is in sync with models.
	if err := database.AutoMigrate(AllModels...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return database, nil
}
