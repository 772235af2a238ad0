package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service adalah item katalog yang bisa dibooking. Pasangan (name, category)
// unik di antara service yang belum dihapus; dicek di layer service, bukan
// lewat unique index, karena baris soft-deleted tetap ada di tabel.
type Service struct {
	ID          string         `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null;index:idx_services_name_category" json:"name"`
	Category    string         `gorm:"type:varchar(100);not null;index:idx_services_name_category" json:"category"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Bookings    []Booking      `gorm:"foreignKey:ServiceID" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ServiceView is the public projection of a Service.
type ServiceView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func (s Service) View() ServiceView {
	return ServiceView{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Description: s.Description,
	}
}
