package models

// All lists every model managed by AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&Admin{},
		&Service{},
		&Booking{},
		&CacheEntry{},
	}
}
