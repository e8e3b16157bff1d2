package handlers

import (
	"github.com/gin-gonic/gin"

	userRepo "bridalstudio/database/repository/user"
)

// HandlerBundle aggregates every route handler plus the repositories the
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	// Auth endpoints.
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	MeHandler       gin.HandlerFunc

	// Booking endpoints.
	CreateBookingHandler      gin.HandlerFunc
	CreateGuestBookingHandler gin.HandlerFunc
	GetBookingsHandler        gin.HandlerFunc
	GetBookingHandler         gin.HandlerFunc
	UpdateBookingHandler      gin.HandlerFunc
	DeleteBookingHandler      gin.HandlerFunc

	// Catalog endpoints.
	GetAvailableServicesHandler gin.HandlerFunc
}
