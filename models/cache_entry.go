package models

import (
	"time"

	"gorm.io/datatypes"
)

// CacheEntry backs the "database" cache driver. Rows are derived data and may
// be truncated at any time.
type CacheEntry struct {
	Key       string         `gorm:"column:cache_key;primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"not null"`
	ExpiresAt time.Time      `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
