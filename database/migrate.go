package database

import (
	"fmt"

	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Verifikasi tabel
	for _, m := range models.All() {
		if !db.Migrator().HasTable(m) {
			return fmt.Errorf("auto migrate: table for %T missing", m)
		}
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
