package models

import "gorm.io/gorm"

// Scope states explicitly whether a query sees soft-deleted rows.
type Scope int

const (
	ExcludeDeleted Scope = iota
	IncludeDeleted
	OnlyDeleted
)

func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	switch s {
	case IncludeDeleted:
		return db.Unscoped()
	case OnlyDeleted:
		return db.Unscoped().Where("deleted_at IS NOT NULL")
	default:
		return db
	}
}
