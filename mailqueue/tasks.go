package mailqueue

import (
	"time"

	"bridalstudio/models"
)

// Task types handled by the mail worker.
const (
	TypeBookingConfirmation = "mail:booking_confirmation"
	TypeAdminAlert          = "mail:admin_alert"
)

// MailPayload carries everything the worker needs to render and send a booking
// email without re-reading the database.
type MailPayload struct {
	BookingID      string    `json:"bookingId"`
	UserID         string    `json:"userId,omitempty"`
	IsGuestBooking bool      `json:"isGuestBooking"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Service        string    `json:"service"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	AdditionalInfo string    `json:"additionalInfo,omitempty"`
	Status         string    `json:"status"`
}

func payloadFromBooking(b *models.Booking) MailPayload {
	return MailPayload{
		BookingID:      b.ID,
		UserID:         b.UserID,
		IsGuestBooking: b.IsGuestBooking,
		Name:           b.Name,
		Email:          b.Email,
		Phone:          b.Phone,
		Service:        b.Service,
		Date:           b.Date,
		Time:           b.Time,
		AdditionalInfo: b.AdditionalInfo,
		Status:         b.Status,
	}
}

func (p MailPayload) toBooking() *models.Booking {
	return &models.Booking{
		ID:             p.BookingID,
		UserID:         p.UserID,
		IsGuestBooking: p.IsGuestBooking,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Service:        p.Service,
		Date:           p.Date,
		Time:           p.Time,
		AdditionalInfo: p.AdditionalInfo,
		Status:         p.Status,
	}
}
