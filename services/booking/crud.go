package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "bridalstudio/database/repository/booking"
	"bridalstudio/models"
	"bridalstudio/utils"
)

// Create persists a booking owned by the caller. Both notification emails are
// queued after a successful write; their failure never affects the result.
func (s *DefaultBookingService) Create(caller Caller, input models.BookingInput) (*models.Booking, error) {
	booking, err := buildBooking(input)
	if err != nil {
		return nil, err
	}
	booking.UserID = caller.ID

	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.notifyCreated(booking)
	return booking, nil
}

// CreateGuest persists a booking without an owning account. The six required
// fields are checked up front so a guest gets one message naming everything
// that is missing.
func (s *DefaultBookingService) CreateGuest(input models.BookingInput) (*models.Booking, error) {
	if missing := missingGuestFields(input); len(missing) > 0 {
		return nil, &models.ValidationError{Messages: []string{
			"Please provide all required fields: " + strings.Join(missing, ", "),
		}}
	}

	booking, err := buildBooking(input)
	if err != nil {
		return nil, err
	}
	booking.IsGuestBooking = true

	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to persist guest booking: %w", err)
	}

	s.notifyCreated(booking)
	return booking, nil
}

// Get returns a single booking, gated to its owner or an admin.
func (s *DefaultBookingService) Get(caller Caller, id string) (*models.Booking, error) {
	booking, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if !canAccess(caller, booking) {
		return nil, &NotAuthorizedError{Action: "access"}
	}
	return booking, nil
}

// List returns every booking for admins, with owner contact details attached
// where the booking has an owning account. Other callers get only their own.
func (s *DefaultBookingService) List(caller Caller) ([]models.Booking, error) {
	if !caller.IsAdmin() {
		bookings, err := s.Repo.GetByUserID(caller.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings: %w", err)
		}
		return nonNil(bookings), nil
	}

	bookings, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	s.attachOwners(bookings)
	return nonNil(bookings), nil
}

// nonNil keeps an empty listing serializing as a JSON array.
func nonNil(bookings []models.Booking) []models.Booking {
	if bookings == nil {
		return []models.Booking{}
	}
	return bookings
}

// Update applies a partial update under the owner-or-admin gate. A transition
// into confirmed status queues one extra customer confirmation email.
func (s *DefaultBookingService) Update(caller Caller, id string, update models.BookingUpdate) (*models.Booking, error) {
	booking, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if !canAccess(caller, booking) {
		return nil, &NotAuthorizedError{Action: "update"}
	}

	oldStatus := booking.Status
	if err := applyUpdate(booking, update); err != nil {
		return nil, err
	}
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(booking); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if oldStatus != models.BookingStatusConfirmed && booking.Status == models.BookingStatusConfirmed {
		if err := s.Notifier.QueueBookingConfirmation(booking); err != nil {
			utils.GetLogger().Error("Failed to queue booking confirmation email",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	return booking, nil
}

// Delete removes a booking under the owner-or-admin gate.
func (s *DefaultBookingService) Delete(caller Caller, id string) error {
	booking, err := s.fetch(id)
	if err != nil {
		return err
	}
	if !canAccess(caller, booking) {
		return &NotAuthorizedError{Action: "delete"}
	}

	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (s *DefaultBookingService) fetch(id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return booking, nil
}

// canAccess implements the owner-or-admin gate. Guest bookings have no owner,
// so only admins pass.
func canAccess(caller Caller, booking *models.Booking) bool {
	if caller.IsAdmin() {
		return true
	}
	return booking.UserID != "" && booking.UserID == caller.ID
}

// notifyCreated queues both post-create emails. Failures are logged and
// swallowed so notification problems never roll back a booking.
func (s *DefaultBookingService) notifyCreated(booking *models.Booking) {
	logger := utils.GetLogger()
	if err := s.Notifier.QueueBookingConfirmation(booking); err != nil {
		logger.Error("Failed to queue booking confirmation email",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	if err := s.Notifier.QueueAdminAlert(booking); err != nil {
		logger.Error("Failed to queue admin notification email",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

// attachOwners joins owner name/email onto bookings that have an owning account.
func (s *DefaultBookingService) attachOwners(bookings []models.Booking) {
	idSet := make(map[string]struct{})
	for _, b := range bookings {
		if b.UserID != "" {
			idSet[b.UserID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	owners, err := s.Users.GetByIDs(ids)
	if err != nil {
		utils.GetLogger().Warn("Failed to attach booking owners", zap.Error(err))
		return
	}

	byID := make(map[string]models.User, len(owners))
	for _, u := range owners {
		byID[u.ID] = u
	}
	for i := range bookings {
		if u, ok := byID[bookings[i].UserID]; ok {
			bookings[i].Owner = &models.BookingOwner{Name: u.Name, Email: u.Email}
		}
	}
}

// buildBooking converts raw input into a validated booking record with
// creation defaults applied.
func buildBooking(input models.BookingInput) (*models.Booking, error) {
	date, err := parseBookingDate(input.Date)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(input.Email),
		Phone:          strings.TrimSpace(input.Phone),
		Service:        strings.TrimSpace(input.Service),
		Date:           date,
		Time:           strings.TrimSpace(input.Time),
		AdditionalInfo: strings.TrimSpace(input.AdditionalInfo),
		Status:         models.BookingStatusPending,
		CreatedAt:      time.Now(),
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}
	return booking, nil
}

// applyUpdate copies the non-nil fields of a partial update onto the booking.
func applyUpdate(booking *models.Booking, update models.BookingUpdate) error {
	if update.Name != nil {
		booking.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		booking.Email = strings.TrimSpace(*update.Email)
	}
	if update.Phone != nil {
		booking.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Service != nil {
		booking.Service = *update.Service
	}
	if update.Date != nil {
		date, err := parseBookingDate(*update.Date)
		if err != nil {
			return err
		}
		booking.Date = date
	}
	if update.Time != nil {
		booking.Time = *update.Time
	}
	if update.AdditionalInfo != nil {
		booking.AdditionalInfo = strings.TrimSpace(*update.AdditionalInfo)
	}
	if update.Status != nil {
		booking.Status = *update.Status
	}
	return nil
}

// parseBookingDate accepts the form's "YYYY-MM-DD" wire format, with RFC3339
// as a fallback for API clients. An empty value parses to the zero time so
// the required-field validation reports it.
func parseBookingDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse("2006-01-02", raw); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return d, nil
	}
	return time.Time{}, &models.ValidationError{Messages: []string{"Please provide a valid date"}}
}

// missingGuestFields names every required guest-booking field absent from the input.
func missingGuestFields(input models.BookingInput) []string {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(input.Service) == "" {
		missing = append(missing, "service")
	}
	if strings.TrimSpace(input.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(input.Time) == "" {
		missing = append(missing, "time")
	}
	return missing
}
