package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"bridalstudio/config"
	"bridalstudio/models"
)

// mailDialer abstracts gomail's transport so tests can substitute it.
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer is the production Mailer implementation over SMTP.
type SMTPMailer struct {
	dialer     mailDialer
	senderName string
	sender     string
	adminEmail string
}

// NewSMTPMailer builds a mailer from the loaded application config.
func NewSMTPMailer() *SMTPMailer {
	cfg := config.AppConfig
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPSecure

	return &SMTPMailer{
		dialer:     d,
		senderName: cfg.EmailFromName,
		sender:     cfg.EmailFrom,
		adminEmail: cfg.AdminEmail,
	}
}

// SendBookingConfirmation emails the customer their booking details.
func (m *SMTPMailer) SendBookingConfirmation(booking *models.Booking) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.sender, m.senderName)
	msg.SetHeader("To", booking.Email)
	msg.SetHeader("Subject", "Booking Confirmation - "+m.senderName)
	msg.SetBody("text/html", renderConfirmationBody(booking, m.senderName))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send booking confirmation to %s: %w", booking.Email, err)
	}
	return nil
}

// SendAdminNotification alerts the admin address about a booking.
func (m *SMTPMailer) SendAdminNotification(booking *models.Booking) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.sender, m.senderName)
	msg.SetHeader("To", m.adminEmail)
	msg.SetHeader("Subject", fmt.Sprintf("New Booking: %s for %s", booking.Service, booking.Name))
	msg.SetBody("text/html", renderAdminBody(booking, m.senderName))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send admin notification: %w", err)
	}
	return nil
}
