package notification

import (
	"bridalstudio/models"
)

// Mailer defines methods for sending booking emails.
type Mailer interface {
	// SendBookingConfirmation emails the customer a confirmation of their booking.
	SendBookingConfirmation(booking *models.Booking) error
	// SendAdminNotification alerts the studio's admin address about a new booking.
	SendAdminNotification(booking *models.Booking) error
}
