package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateTimeLayout is the wire format for schedule_date_time.
const DateTimeLayout = "2006-01-02 15:04:05"

type Booking struct {
	ID               string         `gorm:"type:char(36);primaryKey" json:"id"`
	ServiceID        string         `gorm:"type:char(36);not null;index" json:"service_id"`
	Service          *Service       `gorm:"foreignKey:ServiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"service,omitempty"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	PhoneNumber      string         `gorm:"type:varchar(20);not null;index" json:"phone_number"`
	Status           BookingStatus  `gorm:"type:smallint;not null;default:0" json:"status"`
	ScheduleDateTime time.Time      `gorm:"not null;index" json:"schedule_date_time"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// ServiceView returns nil when the related service was not loaded or has been
// deleted independently of the booking.
func (b Booking) ServiceView() *ServiceView {
	if b.Service == nil {
		return nil
	}
	v := b.Service.View()
	return &v
}
