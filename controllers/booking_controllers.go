package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/models"
	"github.com/yeremiapane/service-booking/services"
	"github.com/yeremiapane/service-booking/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type createBookingRequest struct {
	ServiceID    string `json:"service_id" binding:"required,max=36"`
	Name         string `json:"name" binding:"required,notblank,max=255"`
	Phone        string `json:"phone" binding:"required,notblank,max=15"`
	ScheduleDate string `json:"schedule_date" binding:"required,future"`
}

// Store -> customer membuat booking baru (status awal pending)
func (bc *BookingController) Store(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	scheduleAt, err := utils.ParseDateTime(req.ScheduleDate)
	if err != nil {
		utils.RespondError(c, utils.ValidationError("Validation failed.", map[string][]string{
			"schedule_date": {"The schedule_date field must be a valid date after now."},
		}))
		return
	}

	booking, err := bc.Bookings.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		ServiceID:  req.ServiceID,
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		ScheduleAt: scheduleAt,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	status, err := booking.Status.Label()
	if err != nil {
		utils.RespondError(c, utils.StoreError("Booking creation failed", err))
		return
	}

	utils.InfoLogger.Printf("New booking created (ID=%s) for service %s", booking.ID, booking.ServiceID)

	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully.", gin.H{
		"booking_id":   booking.ID,
		"name":         booking.Name,
		"phone_number": booking.PhoneNumber,
		"service_id":   booking.ServiceID,
		"booking_date": booking.ScheduleDateTime.UTC().Format(models.DateTimeLayout),
		"status":       status,
	})
}

// Show -> status booking, di-cache per booking id
func (bc *BookingController) Show(c *gin.Context) {
	view, src, err := bc.Bookings.GetBookingStatus(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	markSource(c, src)
	message := "Booking retrieved from db."
	if src.Hit() {
		message = "Booking retrieved from cache."
	}
	utils.RespondJSON(c, http.StatusOK, message, view)
}
