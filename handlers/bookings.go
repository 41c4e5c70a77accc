package handlers

import (
	"net/http"

	"messmate-api/config"
	"messmate-api/models"
	"messmate-api/services"

	"github.com/gin-gonic/gin"
)

type BookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookMeal books a daily menu entry. Repeat bookings for the same entry are
// merged into its existing booking.
func BookMeal(c *gin.Context) {
	var req services.BookMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	booking, err := services.BookMeal(c.Request.Context(), config.DB, req)
	if err != nil {
		respondServiceError(c, "book_meal", err)
		return
	}
	respond(c, http.StatusOK, "Meal booked successfully", booking)
}

// ListBookings returns all bookings, optionally filtered by ?status=.
func ListBookings(c *gin.Context) {
	var status models.BookingStatus
	if s := c.Query("status"); s != "" {
		st, ok := models.ParseBookingStatus(s)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid booking status: "+s)
			return
		}
		status = st
	}
	bookings, err := services.ListBookings(c.Request.Context(), config.DB, status)
	if err != nil {
		respondInternal(c, "list_bookings", err)
		return
	}
	respond(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func UpdateBookingStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	status, valid := models.ParseBookingStatus(req.Status)
	if !valid {
		respondError(c, http.StatusBadRequest, "Invalid booking status: "+req.Status)
		return
	}
	booking, err := services.UpdateBookingStatus(c.Request.Context(), config.DB, id, status)
	if err != nil {
		respondServiceError(c, "update_booking_status", err)
		return
	}
	respond(c, http.StatusOK, "Booking status updated to "+string(status), booking)
}

// ClearBookings wipes every booking. Admin only.
func ClearBookings(c *gin.Context) {
	n, err := services.ClearBookings(c.Request.Context(), config.DB)
	if err != nil {
		respondInternal(c, "clear_bookings", err)
		return
	}
	respond(c, http.StatusOK, "All bookings cleared", gin.H{"deleted": n})
}

func BookingStats(c *gin.Context) {
	stats, err := services.BookingStatistics(c.Request.Context(), config.DB)
	if err != nil {
		respondInternal(c, "booking_stats", err)
		return
	}
	respond(c, http.StatusOK, "Booking statistics retrieved successfully", stats)
}

// BookingStatsByDate reports one entry per active daily menu on :date.
func BookingStatsByDate(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD: "+c.Param("date"))
		return
	}
	stats, err := services.BookingStatisticsByDate(c.Request.Context(), config.DB, date)
	if err != nil {
		respondInternal(c, "booking_stats_by_date", err)
		return
	}
	respond(c, http.StatusOK, "Booking statistics retrieved successfully", stats)
}
