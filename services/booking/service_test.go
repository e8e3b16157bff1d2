package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "bridalstudio/database/repository/booking"
	userRepo "bridalstudio/database/repository/user"
	"bridalstudio/models"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings map[string]models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := b
	return &copied, nil
}

func (r *fakeBookingRepo) GetAll() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByUserID(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(b *models.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return bookingRepo.ErrNotFound
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) Delete(id string) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

// fakeUserRepo serves the admin listing join.
type fakeUserRepo struct {
	users map[string]models.User
}

func (r *fakeUserRepo) Create(u *models.User) error { r.users[u.ID] = *u; return nil }

func (r *fakeUserRepo) UpdateTokenHash(id, hash string) error { return nil }

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) GetByIDs(ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeNotifier records queue attempts and can simulate transport failure.
type fakeNotifier struct {
	confirmations int
	adminAlerts   int
	fail          bool
}

func (n *fakeNotifier) QueueBookingConfirmation(b *models.Booking) error {
	n.confirmations++
	if n.fail {
		return errors.New("redis is down")
	}
	return nil
}

func (n *fakeNotifier) QueueAdminAlert(b *models.Booking) error {
	n.adminAlerts++
	if n.fail {
		return errors.New("redis is down")
	}
	return nil
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeNotifier) {
	repo := newFakeBookingRepo()
	notifier := &fakeNotifier{}
	svc := &DefaultBookingService{
		Repo:     repo,
		Users:    &fakeUserRepo{users: make(map[string]models.User)},
		Notifier: notifier,
	}
	return svc, repo, notifier
}

func validInput() models.BookingInput {
	return models.BookingInput{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9998887776",
		Service: "Bridal Makeup",
		Date:    "2025-12-01",
		Time:    "10:00 AM",
	}
}

func TestCreate_SetsDefaultsAndQueuesBothEmails(t *testing.T) {
	svc, repo, notifier := newTestService()

	created, err := svc.Create(Caller{ID: "u1", Role: models.RoleUser}, validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.False(t, created.IsGuestBooking)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, 5*time.Second)
	assert.Len(t, repo.bookings, 1)
	assert.Equal(t, 1, notifier.confirmations)
	assert.Equal(t, 1, notifier.adminAlerts)
}

func TestCreate_NotificationFailureDoesNotFailBooking(t *testing.T) {
	svc, repo, notifier := newTestService()
	notifier.fail = true

	created, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)
	assert.Len(t, repo.bookings, 1)
	assert.Equal(t, models.BookingStatusPending, repo.bookings[created.ID].Status)
	assert.Equal(t, 1, notifier.confirmations)
	assert.Equal(t, 1, notifier.adminAlerts)
}

func TestCreate_InvalidServiceRejectedNothingPersisted(t *testing.T) {
	svc, repo, notifier := newTestService()

	input := validInput()
	input.Service = "Catering"

	_, err := svc.Create(Caller{ID: "u1"}, input)
	require.Error(t, err)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "Catering is not a valid service")
	assert.Empty(t, repo.bookings)
	assert.Zero(t, notifier.confirmations)
}

func TestCreateGuest_FlagsGuestAndQueuesBothEmails(t *testing.T) {
	svc, repo, notifier := newTestService()

	created, err := svc.CreateGuest(validInput())
	require.NoError(t, err)

	assert.True(t, created.IsGuestBooking)
	assert.Empty(t, created.UserID)
	assert.Equal(t, models.BookingStatusPending, created.Status)
	assert.Len(t, repo.bookings, 1)
	assert.Equal(t, 1, notifier.confirmations)
	assert.Equal(t, 1, notifier.adminAlerts)
}

func TestCreateGuest_MissingFieldsNamedNothingPersisted(t *testing.T) {
	svc, repo, _ := newTestService()

	input := validInput()
	input.Phone = ""

	_, err := svc.CreateGuest(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
	assert.Empty(t, repo.bookings)
}

func TestCreateGuest_AllMissingFieldsListed(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateGuest(models.BookingInput{})
	require.Error(t, err)
	for _, field := range []string{"name", "email", "phone", "service", "date", "time"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestCreateGuest_WhitespaceFieldsTreatedAsMissing(t *testing.T) {
	svc, repo, _ := newTestService()

	input := validInput()
	input.Time = " "
	input.Service = "  "

	_, err := svc.CreateGuest(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please provide all required fields: service, time")
	assert.Empty(t, repo.bookings)
}

func TestGet_OwnerAndAdminAllowedStrangerRejected(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(Caller{ID: "u1", Role: models.RoleUser}, validInput())
	require.NoError(t, err)

	_, err = svc.Get(Caller{ID: "u1", Role: models.RoleUser}, created.ID)
	assert.NoError(t, err)

	_, err = svc.Get(Caller{ID: "admin", Role: models.RoleAdmin}, created.ID)
	assert.NoError(t, err)

	_, err = svc.Get(Caller{ID: "u2", Role: models.RoleUser}, created.ID)
	var authErr *NotAuthorizedError
	require.ErrorAs(t, err, &authErr)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(Caller{ID: "u1"}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_GuestBookingOnlyAdminAccessible(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.CreateGuest(validInput())
	require.NoError(t, err)

	_, err = svc.Get(Caller{ID: "u1", Role: models.RoleUser}, created.ID)
	var authErr *NotAuthorizedError
	require.ErrorAs(t, err, &authErr)

	_, err = svc.Get(Caller{ID: "admin", Role: models.RoleAdmin}, created.ID)
	assert.NoError(t, err)
}

func TestList_AdminSeesAllWithOwnersAttached(t *testing.T) {
	svc, _, _ := newTestService()
	users := svc.Users.(*fakeUserRepo)
	users.users["u1"] = models.User{ID: "u1", Name: "Asha Rao", Email: "asha@example.com"}

	_, err := svc.Create(Caller{ID: "u1", Role: models.RoleUser}, validInput())
	require.NoError(t, err)
	_, err = svc.CreateGuest(validInput())
	require.NoError(t, err)

	all, err := svc.List(Caller{ID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, all, 2)

	var owned, guest int
	for _, b := range all {
		if b.UserID == "u1" {
			owned++
			require.NotNil(t, b.Owner)
			assert.Equal(t, "Asha Rao", b.Owner.Name)
			assert.Equal(t, "asha@example.com", b.Owner.Email)
		} else {
			guest++
			assert.Nil(t, b.Owner)
		}
	}
	assert.Equal(t, 1, owned)
	assert.Equal(t, 1, guest)
}

func TestList_NonAdminSeesOnlyOwn(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)
	_, err = svc.Create(Caller{ID: "u2"}, validInput())
	require.NoError(t, err)

	own, err := svc.List(Caller{ID: "u1", Role: models.RoleUser})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "u1", own[0].UserID)
}

func TestList_NoBookingsReturnsEmptySlice(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.List(Caller{ID: "u1", Role: models.RoleUser})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got, err = svc.List(Caller{ID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdate_TransitionToConfirmedQueuesOneExtraConfirmation(t *testing.T) {
	svc, _, notifier := newTestService()

	created, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)
	require.Equal(t, 1, notifier.confirmations)

	status := models.BookingStatusConfirmed
	updated, err := svc.Update(Caller{ID: "u1"}, created.ID, models.BookingUpdate{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
	assert.Equal(t, 2, notifier.confirmations)
	assert.Equal(t, 1, notifier.adminAlerts) // no extra admin alert on update
}

func TestUpdate_ConfirmedToConfirmedQueuesNothing(t *testing.T) {
	svc, _, notifier := newTestService()

	created, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)

	status := models.BookingStatusConfirmed
	_, err = svc.Update(Caller{ID: "u1"}, created.ID, models.BookingUpdate{Status: &status})
	require.NoError(t, err)
	require.Equal(t, 2, notifier.confirmations)

	_, err = svc.Update(Caller{ID: "u1"}, created.ID, models.BookingUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 2, notifier.confirmations)
}

func TestUpdate_TransitionToNonConfirmedQueuesNothing(t *testing.T) {
	svc, _, notifier := newTestService()

	created, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)

	status := models.BookingStatusCanceled
	_, err = svc.Update(Caller{ID: "u1"}, created.ID, models.BookingUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.confirmations)
}

func TestUpdate_InvalidStatusRejected(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)

	status := "archived"
	_, err = svc.Update(Caller{ID: "u1"}, created.ID, models.BookingUpdate{Status: &status})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.BookingStatusPending, repo.bookings[created.ID].Status)
}

func TestUpdate_StrangerRejected(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)

	status := models.BookingStatusConfirmed
	_, err = svc.Update(Caller{ID: "u2", Role: models.RoleUser}, created.ID, models.BookingUpdate{Status: &status})
	var authErr *NotAuthorizedError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Not authorized to update this booking", authErr.Error())
}

func TestDelete_OwnerDeletesStrangerRejected(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.Create(Caller{ID: "u1"}, validInput())
	require.NoError(t, err)

	err = svc.Delete(Caller{ID: "u2", Role: models.RoleUser}, created.ID)
	var authErr *NotAuthorizedError
	require.ErrorAs(t, err, &authErr)
	assert.Len(t, repo.bookings, 1)

	require.NoError(t, svc.Delete(Caller{ID: "u1"}, created.ID))
	assert.Empty(t, repo.bookings)
}

func TestGetAvailableServices_MatchesOfferedEnum(t *testing.T) {
	svc, _, _ := newTestService()

	services, err := svc.GetAvailableServices()
	require.NoError(t, err)
	require.Len(t, services, len(models.OfferedServices))
	for i, s := range services {
		assert.Equal(t, models.OfferedServices[i], s.Name)
	}
}
