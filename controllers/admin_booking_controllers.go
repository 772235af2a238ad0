package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/services"
	"github.com/yeremiapane/service-booking/utils"
)

type AdminBookingController struct {
	Bookings *services.BookingService
	AppURL   string
}

func NewAdminBookingController(bookings *services.BookingService, appURL string) *AdminBookingController {
	return &AdminBookingController{Bookings: bookings, AppURL: appURL}
}

// Index -> semua booking beserta service-nya, di-cache per halaman
func (ac *AdminBookingController) Index(c *gin.Context) {
	page, perPage, err := pageParams(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, src, err := ac.Bookings.ListBookings(c.Request.Context(), page, perPage, pageBaseURL(c, ac.AppURL))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	markSource(c, src)
	message := "Bookings retrieved from database."
	if src.Hit() {
		message = "Bookings retrieved from cache."
	}
	utils.RespondJSON(c, http.StatusOK, message, result)
}

func (ac *AdminBookingController) Show(c *gin.Context) {
	view, err := ac.Bookings.GetBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking retrieved successfully.", view)
}
