package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/parampara-backend/internal/domain/heritage"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&heritage.CulturalDocument{},
		&heritage.FolkSong{},
		&heritage.Story{},
		&heritage.UserProgress{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
