package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCanceled  = "canceled"
)

// OfferedServices is the fixed set of services a booking may reference.
var OfferedServices = []string{
	"Bridal Makeup",
	"Mehndi Design",
	"Hair Styling",
	"Saree Draping",
	"Family Package",
}

// Booking represents an appointment booking record.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id,omitempty" json:"userId,omitempty"` // Owning account; empty for guest bookings
	IsGuestBooking bool      `bson:"is_guest_booking" json:"isGuestBooking"`
	Name           string    `bson:"name" json:"name" validate:"required"`
	Email          string    `bson:"email" json:"email" validate:"required,email"`
	Phone          string    `bson:"phone" json:"phone" validate:"required"`
	Service        string    `bson:"service" json:"service" validate:"required,offered"`
	Date           time.Time `bson:"date" json:"date" validate:"required"`
	Time           string    `bson:"time" json:"time" validate:"required"`
	AdditionalInfo string    `bson:"additional_info,omitempty" json:"additionalInfo,omitempty"`
	Status         string    `bson:"status" json:"status" validate:"omitempty,oneof=pending confirmed completed canceled"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`

	// Owner is populated for admin listings only; never persisted.
	Owner *BookingOwner `bson:"-" json:"user,omitempty"`
}

// BookingOwner carries the owning account's contact details on admin listings.
type BookingOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidationError aggregates every field-level violation into one message.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

var bookingValidator = newBookingValidator()

// newBookingValidator registers the service catalog check so the schema and
// the catalog endpoint share one source of truth.
func newBookingValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("offered", func(fl validator.FieldLevel) bool {
		return IsOfferedService(fl.Field().String())
	})
	return v
}

// Validate checks the booking against the schema rules. All violations are
// collected and returned together rather than failing on the first one.
func (b *Booking) Validate() error {
	err := bookingValidator.Struct(b)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, fe := range verrs {
		messages = append(messages, bookingFieldMessage(b, fe))
	}
	return &ValidationError{Messages: messages}
}

// bookingFieldMessage maps a field violation to its user-facing message.
func bookingFieldMessage(b *Booking, fe validator.FieldError) string {
	switch fe.StructField() {
	case "Name":
		return "Please provide a name"
	case "Email":
		if fe.Tag() == "email" {
			return "Please provide a valid email"
		}
		return "Please provide an email"
	case "Phone":
		return "Please provide a phone number"
	case "Service":
		if fe.Tag() == "offered" {
			return fmt.Sprintf("%s is not a valid service", b.Service)
		}
		return "Please select a service"
	case "Date":
		return "Please select a date"
	case "Time":
		return "Please select a time"
	case "Status":
		return fmt.Sprintf("%s is not a valid status", b.Status)
	default:
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
}

// IsOfferedService reports whether the given name is part of the fixed catalog.
func IsOfferedService(name string) bool {
	for _, s := range OfferedServices {
		if s == name {
			return true
		}
	}
	return false
}
