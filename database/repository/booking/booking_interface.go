package bookingRepo

import (
	"bridalstudio/models"
)

// BookingRepository defines data access for booking records.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetAll() ([]models.Booking, error)
	GetByUserID(userID string) ([]models.Booking, error)
	Update(booking *models.Booking) error
	Delete(id string) error
}
