package cache

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/service-booking/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseStore keeps entries in the cache_entries table so that several
// instances behind a load balancer share them.
type DatabaseStore struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{DB: db, now: time.Now}
}

func (d *DatabaseStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.CacheEntry
	err := d.DB.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, d.now().UTC()).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (d *DatabaseStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := models.CacheEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		ExpiresAt: d.now().UTC().Add(ttl),
	}
	return d.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

func (d *DatabaseStore) Sweep(ctx context.Context) (int64, error) {
	res := d.DB.WithContext(ctx).
		Where("expires_at <= ?", d.now().UTC()).
		Delete(&models.CacheEntry{})
	return res.RowsAffected, res.Error
}
