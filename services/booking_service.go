package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/service-booking/cache"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/utils"
	"gorm.io/gorm"
)

const bookingsCacheNamespace = "bookings-v1"

type CreateBookingInput struct {
	ServiceID  string
	Name       string
	Phone      string
	ScheduleAt time.Time
}

// BookingStatusView is the public answer to "what happened to my booking".
type BookingStatusView struct {
	BookingID        string              `json:"booking_id"`
	Status           string              `json:"status"`
	Service          *models.ServiceView `json:"service"`
	ScheduleDateTime string              `json:"schedule_date_time"`
}

// BookingView is the admin projection with the joined service.
type BookingView struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	PhoneNumber      string               `json:"phone_number"`
	ServiceID        string               `json:"service_id"`
	Status           string               `json:"status"`
	StatusCode       models.BookingStatus `json:"status_code"`
	ScheduleDateTime string               `json:"schedule_date_time"`
	Service          *models.ServiceView  `json:"service"`
}

type BookingService struct {
	DB       *gorm.DB
	Cache    cache.Store
	CacheTTL time.Duration
	Notifier Notifier
	// Mailbox receives every booking confirmation.
	Mailbox string
	Now     func() time.Time
}

func NewBookingService(db *gorm.DB, store cache.Store, ttl time.Duration, notifier Notifier, mailbox string) *BookingService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &BookingService{
		DB:       db,
		Cache:    store,
		CacheTTL: ttl,
		Notifier: notifier,
		Mailbox:  mailbox,
		Now:      time.Now,
	}
}

func BookingStatusCacheKey(bookingID string) string {
	return cache.Key(fmt.Sprintf("booking-status-%s", bookingID))
}

func BookingsCacheKey(page, perPage int) string {
	return cache.Key(bookingsCacheNamespace, cache.P("page", page), cache.P("per_page", perPage))
}

// CreateBooking stores a new PENDING booking. Validation happens before any
// write; the insert and the service load share one transaction; the
// confirmation is dispatched only after commit and its outcome is ignored.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	fields := map[string][]string{}
	if in.Name == "" {
		fields["name"] = []string{"The name field is required."}
	}
	if in.Phone == "" {
		fields["phone"] = []string{"The phone field is required."}
	}
	if !in.ScheduleAt.After(s.Now()) {
		fields["schedule_date"] = []string{"The schedule_date field must be a valid date after now."}
	}
	if len(fields) > 0 {
		return nil, utils.ValidationError("Validation failed.", fields)
	}

	// Cek apakah service ada dan belum dihapus
	var exists int64
	if err := s.DB.WithContext(ctx).Model(&models.Service{}).Where("id = ?", in.ServiceID).Count(&exists).Error; err != nil {
		return nil, utils.StoreError("Booking creation failed", err)
	}
	if exists == 0 {
		return nil, utils.NotFound("Service not found.")
	}

	booking := models.Booking{
		ServiceID:        in.ServiceID,
		Name:             in.Name,
		PhoneNumber:      in.Phone,
		Status:           models.StatusPending,
		ScheduleDateTime: in.ScheduleAt.UTC(),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		var svc models.Service
		if err := tx.First(&svc, "id = ?", booking.ServiceID).Error; err != nil {
			return err
		}
		booking.Service = &svc
		return nil
	})
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"service_id": in.ServiceID,
			"schedule":   in.ScheduleAt.Format(time.RFC3339),
		}).Errorf("Booking creation failed: %v", err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Service not found.")
		}
		return nil, utils.StoreError("Booking creation failed", err)
	}

	s.notify(booking)
	return &booking, nil
}

func (s *BookingService) notify(b models.Booking) {
	if s.Notifier == nil {
		return
	}
	msg := BookingConfirmation{
		Recipient:    s.Mailbox,
		BookingID:    b.ID,
		CustomerName: b.Name,
		ScheduledAt:  b.ScheduleDateTime,
	}
	if b.Service != nil {
		msg.ServiceName = b.Service.Name
	}
	s.Notifier.Dispatch(msg)
}

// GetBookingStatus is cached per booking id. Unknown ids return NotFound and
// are not cached.
func (s *BookingService) GetBookingStatus(ctx context.Context, bookingID string) (BookingStatusView, cache.Source, error) {
	if bookingID == "" {
		return BookingStatusView{}, cache.SourceStore, utils.NotFound("Booking not found.")
	}
	return cache.Remember(ctx, s.Cache, BookingStatusCacheKey(bookingID), s.CacheTTL, func(ctx context.Context) (BookingStatusView, error) {
		booking, err := s.find(ctx, bookingID)
		if err != nil {
			return BookingStatusView{}, err
		}
		label, err := booking.Status.Label()
		if err != nil {
			return BookingStatusView{}, utils.StoreError("Error retrieving booking.", err)
		}
		return BookingStatusView{
			BookingID:        booking.ID,
			Status:           label,
			Service:          booking.ServiceView(),
			ScheduleDateTime: booking.ScheduleDateTime.UTC().Format(models.DateTimeLayout),
		}, nil
	})
}

// ListBookings is the cached admin listing. As with ListPublic, links are
// built from baseURL on every call.
func (s *BookingService) ListBookings(ctx context.Context, page, perPage int, baseURL string) (utils.Page[BookingView], cache.Source, error) {
	result, src, err := cache.Remember(ctx, s.Cache, BookingsCacheKey(page, perPage), s.CacheTTL, func(ctx context.Context) (utils.Page[BookingView], error) {
		query := func() *gorm.DB {
			return models.ExcludeDeleted.Apply(s.DB.WithContext(ctx).Model(&models.Booking{}))
		}

		var total int64
		if err := query().Count(&total).Error; err != nil {
			return utils.Page[BookingView]{}, utils.StoreError("Error fetching bookings.", err)
		}

		var bookings []models.Booking
		err := query().Preload("Service").
			Order("created_at ASC").Order("id ASC").
			Limit(perPage).Offset(utils.Offset(page, perPage)).
			Find(&bookings).Error
		if err != nil {
			return utils.Page[BookingView]{}, utils.StoreError("Error fetching bookings.", err)
		}

		views := make([]BookingView, 0, len(bookings))
		for _, b := range bookings {
			v, err := NewBookingView(b)
			if err != nil {
				return utils.Page[BookingView]{}, utils.StoreError("Error fetching bookings.", err)
			}
			views = append(views, v)
		}
		return utils.NewPage(views, page, perPage, total), nil
	})
	if err != nil {
		return result, src, err
	}
	return result.WithLinks(baseURL), src, nil
}

// GetBooking is the uncached admin detail.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (BookingView, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return BookingView{}, err
	}
	v, err := NewBookingView(*booking)
	if err != nil {
		return BookingView{}, utils.StoreError("Error retrieving booking.", err)
	}
	return v, nil
}

func (s *BookingService) find(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := models.ExcludeDeleted.Apply(s.DB.WithContext(ctx)).
		Preload("Service").
		First(&booking, "id = ?", bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Booking not found.")
	}
	if err != nil {
		return nil, utils.StoreError("Error retrieving booking.", err)
	}
	return &booking, nil
}

func NewBookingView(b models.Booking) (BookingView, error) {
	label, err := b.Status.Label()
	if err != nil {
		return BookingView{}, err
	}
	return BookingView{
		ID:               b.ID,
		Name:             b.Name,
		PhoneNumber:      b.PhoneNumber,
		ServiceID:        b.ServiceID,
		Status:           label,
		StatusCode:       b.Status,
		ScheduleDateTime: b.ScheduleDateTime.UTC().Format(models.DateTimeLayout),
		Service:          b.ServiceView(),
	}, nil
}
