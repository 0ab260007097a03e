package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"salesdesk/admin-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	models := []interface{}{
		&entities.Laptop{},
		&entities.Desktop{},
		&entities.Accessory{},
		&entities.Contact{},
		&entities.ChatMessage{},
	}
	for _, model := range models {
		if err := db.WithContext(ctx).AutoMigrate(model); err != nil {
			return err
		}
	}
	log.Info().Msg("applied schema migrations")
	return nil
}
