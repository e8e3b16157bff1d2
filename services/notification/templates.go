package notification

import (
	"fmt"
	"strings"

	"bridalstudio/models"
)

// formatBookingDate renders the appointment date in the long form used in emails,
// e.g. "Monday, December 1, 2025".
func formatBookingDate(b *models.Booking) string {
	return b.Date.Format("Monday, January 2, 2006")
}

func renderConfirmationBody(b *models.Booking, studioName string) string {
	var sb strings.Builder

	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #f0f0f0; border-radius: 5px; color: #333;">`)
	sb.WriteString(`<div style="text-align: center; margin-bottom: 20px;">`)
	sb.WriteString(fmt.Sprintf(`<h2 style="color: #f178b6;">%s</h2>`, studioName))
	sb.WriteString(`<p style="font-size: 18px; font-weight: bold;">Booking Confirmation</p>`)
	sb.WriteString(`</div>`)

	sb.WriteString(fmt.Sprintf(`<p>Dear %s,</p>`, b.Name))
	sb.WriteString(fmt.Sprintf(`<p>Thank you for booking an appointment with %s. We're excited to help you prepare for your special day!</p>`, studioName))

	sb.WriteString(`<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	sb.WriteString(`<h3 style="margin-top: 0; color: #f178b6;">Booking Details:</h3>`)
	sb.WriteString(fmt.Sprintf(`<p><strong>Service:</strong> %s</p>`, b.Service))
	sb.WriteString(fmt.Sprintf(`<p><strong>Date:</strong> %s</p>`, formatBookingDate(b)))
	sb.WriteString(fmt.Sprintf(`<p><strong>Time:</strong> %s</p>`, b.Time))
	sb.WriteString(fmt.Sprintf(`<p><strong>Booking Reference:</strong> %s</p>`, b.ID))
	sb.WriteString(`</div>`)

	sb.WriteString(`<p>If you need to make any changes to your booking, please contact us at least 24 hours before your appointment.</p>`)
	sb.WriteString(`<p>We look forward to seeing you!</p>`)

	sb.WriteString(`<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #777;">`)
	sb.WriteString(`<p>This is an automated email. Please do not reply directly to this message.</p>`)
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	return sb.String()
}

func renderAdminBody(b *models.Booking, studioName string) string {
	bookingType := "Registered User"
	if b.IsGuestBooking {
		bookingType = "Guest Booking"
	}

	var sb strings.Builder

	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #f0f0f0; border-radius: 5px; color: #333;">`)
	sb.WriteString(`<div style="text-align: center; margin-bottom: 20px;">`)
	sb.WriteString(fmt.Sprintf(`<h2 style="color: #f178b6;">%s</h2>`, studioName))
	sb.WriteString(`<p style="font-size: 18px; font-weight: bold;">New Booking Alert</p>`)
	sb.WriteString(`</div>`)

	sb.WriteString(`<p>A new booking has been made with the following details:</p>`)

	sb.WriteString(`<div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	sb.WriteString(`<h3 style="margin-top: 0; color: #f178b6;">Booking Details:</h3>`)
	sb.WriteString(fmt.Sprintf(`<p><strong>Customer:</strong> %s</p>`, b.Name))
	sb.WriteString(fmt.Sprintf(`<p><strong>Email:</strong> %s</p>`, b.Email))
	sb.WriteString(fmt.Sprintf(`<p><strong>Phone:</strong> %s</p>`, b.Phone))
	sb.WriteString(fmt.Sprintf(`<p><strong>Service:</strong> %s</p>`, b.Service))
	sb.WriteString(fmt.Sprintf(`<p><strong>Date:</strong> %s</p>`, formatBookingDate(b)))
	sb.WriteString(fmt.Sprintf(`<p><strong>Time:</strong> %s</p>`, b.Time))
	sb.WriteString(fmt.Sprintf(`<p><strong>Booking Type:</strong> %s</p>`, bookingType))
	sb.WriteString(fmt.Sprintf(`<p><strong>Booking ID:</strong> %s</p>`, b.ID))
	if b.AdditionalInfo != "" {
		sb.WriteString(fmt.Sprintf(`<p><strong>Additional Info:</strong> %s</p>`, b.AdditionalInfo))
	}
	sb.WriteString(`</div>`)

	sb.WriteString(`<p>Please review and confirm this appointment at your earliest convenience.</p>`)
	sb.WriteString(`<p>You can manage this booking in the admin dashboard.</p>`)
	sb.WriteString(`</div>`)

	return sb.String()
}
