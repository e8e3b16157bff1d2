package booking

import (
	bookingRepo "bridalstudio/database/repository/booking"
	userRepo "bridalstudio/database/repository/user"
	"bridalstudio/models"
)

// Caller is the authenticated identity a request acts under.
type Caller struct {
	ID   string
	Role string
}

// IsAdmin reports whether the caller carries the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Notifier queues best-effort booking emails for background dispatch.
type Notifier interface {
	QueueBookingConfirmation(booking *models.Booking) error
	QueueAdminAlert(booking *models.Booking) error
}

// BookingService exposes the booking operations of the studio API.
type BookingService interface {
	// Create persists a booking owned by the caller and queues both
	// notification emails.
	Create(caller Caller, input models.BookingInput) (*models.Booking, error)
	// CreateGuest persists an ownerless booking flagged as a guest booking.
	CreateGuest(input models.BookingInput) (*models.Booking, error)
	// List returns all bookings for admins (with owner contact details
	// attached) and only the caller's own bookings otherwise.
	List(caller Caller) ([]models.Booking, error)
	Get(caller Caller, id string) (*models.Booking, error)
	Update(caller Caller, id string, update models.BookingUpdate) (*models.Booking, error)
	Delete(caller Caller, id string) error
	GetAvailableServices() ([]models.Service, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Notifier Notifier
}
