package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bridalstudio/models"
	"bridalstudio/services/booking"
	"bridalstudio/utils"
)

// BookingHandler exposes the booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler with its dependencies.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// callerFrom builds the caller identity set by the auth middleware.
func callerFrom(c *gin.Context) booking.Caller {
	return booking.Caller{
		ID:   c.GetString("userID"),
		Role: c.GetString("userRole"),
	}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.Service.Create(callerFrom(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// CreateGuestBookingHandler handles POST /api/bookings/guest. No auth required.
func (h *BookingHandler) CreateGuestBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.Service.CreateGuest(input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// GetBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) GetBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.List(callerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "data": bookings})
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	found, err := h.Service.Get(callerFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": found})
}

// UpdateBookingHandler handles PUT /api/bookings/:id.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var update models.BookingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := h.Service.Update(callerFrom(c), c.Param("id"), update)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DeleteBookingHandler handles DELETE /api/bookings/:id.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Service.Delete(callerFrom(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// GetAvailableServicesHandler handles GET /api/services.
func (h *BookingHandler) GetAvailableServicesHandler(c *gin.Context) {
	services, err := h.Service.GetAvailableServices()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(services), "data": services})
}

// respondError maps service errors onto the API's error taxonomy: aggregated
// validation messages, not-found, not-authorized, and a generic server error.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": verr.Error()})
		return
	}

	if errors.Is(err, booking.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": booking.ErrNotFound.Error()})
		return
	}

	var authErr *booking.NotAuthorizedError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": authErr.Error()})
		return
	}

	h.Logger.Error("Booking request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
}
