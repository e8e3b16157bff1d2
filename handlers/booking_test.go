package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bridalstudio/models"
	"bridalstudio/services/booking"
	"bridalstudio/utils"
)

// stubBookingService drives handler tests without Mongo or Redis.
type stubBookingService struct {
	createFn      func(caller booking.Caller, input models.BookingInput) (*models.Booking, error)
	createGuestFn func(input models.BookingInput) (*models.Booking, error)
	listFn        func(caller booking.Caller) ([]models.Booking, error)
	getFn         func(caller booking.Caller, id string) (*models.Booking, error)
	updateFn      func(caller booking.Caller, id string, update models.BookingUpdate) (*models.Booking, error)
	deleteFn      func(caller booking.Caller, id string) error
}

func (s *stubBookingService) Create(caller booking.Caller, input models.BookingInput) (*models.Booking, error) {
	return s.createFn(caller, input)
}

func (s *stubBookingService) CreateGuest(input models.BookingInput) (*models.Booking, error) {
	return s.createGuestFn(input)
}

func (s *stubBookingService) List(caller booking.Caller) ([]models.Booking, error) {
	return s.listFn(caller)
}

func (s *stubBookingService) Get(caller booking.Caller, id string) (*models.Booking, error) {
	return s.getFn(caller, id)
}

func (s *stubBookingService) Update(caller booking.Caller, id string, update models.BookingUpdate) (*models.Booking, error) {
	return s.updateFn(caller, id, update)
}

func (s *stubBookingService) Delete(caller booking.Caller, id string) error {
	return s.deleteFn(caller, id)
}

func (s *stubBookingService) GetAvailableServices() ([]models.Service, error) {
	return (&booking.DefaultBookingService{}).GetAvailableServices()
}

// setupRouter wires the handler under a router that injects a fixed caller,
// standing in for the auth middleware.
func setupRouter(t *testing.T, svc booking.BookingService, callerID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewBookingHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/api/bookings/guest", h.CreateGuestBookingHandler)
	r.GET("/api/services", h.GetAvailableServicesHandler)

	authed := r.Group("")
	authed.Use(func(c *gin.Context) {
		c.Set("userID", callerID)
		c.Set("userRole", role)
		c.Next()
	})
	authed.POST("/api/bookings", h.CreateBookingHandler)
	authed.GET("/api/bookings", h.GetBookingsHandler)
	authed.GET("/api/bookings/:id", h.GetBookingHandler)
	authed.PUT("/api/bookings/:id", h.UpdateBookingHandler)
	authed.DELETE("/api/bookings/:id", h.DeleteBookingHandler)

	return r
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:             "b1",
		IsGuestBooking: true,
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		Phone:          "9998887776",
		Service:        "Bridal Makeup",
		Date:           time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Time:           "10:00 AM",
		Status:         models.BookingStatusPending,
		CreatedAt:      time.Now(),
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateGuestBooking_Created(t *testing.T) {
	svc := &stubBookingService{
		createGuestFn: func(input models.BookingInput) (*models.Booking, error) {
			return sampleBooking(), nil
		},
	}
	r := setupRouter(t, svc, "", "")

	w := doJSON(t, r, http.MethodPost, "/api/bookings/guest", models.BookingInput{
		Name: "Asha Rao", Email: "asha@example.com", Phone: "9998887776",
		Service: "Bridal Makeup", Date: "2025-12-01", Time: "10:00 AM",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.IsGuestBooking)
	assert.Equal(t, models.BookingStatusPending, resp.Data.Status)
}

func TestCreateGuestBooking_ValidationFailure(t *testing.T) {
	svc := &stubBookingService{
		createGuestFn: func(input models.BookingInput) (*models.Booking, error) {
			return nil, &models.ValidationError{Messages: []string{"Please provide all required fields: phone"}}
		},
	}
	r := setupRouter(t, svc, "", "")

	w := doJSON(t, r, http.MethodPost, "/api/bookings/guest", models.BookingInput{Name: "Asha Rao"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phone")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCreateGuestBooking_MalformedBodyRejected(t *testing.T) {
	r := setupRouter(t, &stubBookingService{}, "", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/guest", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid request body", resp.Message)
	assert.NotEmpty(t, resp.Details)
}

func TestCreateBooking_UsesCallerIdentity(t *testing.T) {
	var gotCaller booking.Caller
	svc := &stubBookingService{
		createFn: func(caller booking.Caller, input models.BookingInput) (*models.Booking, error) {
			gotCaller = caller
			b := sampleBooking()
			b.IsGuestBooking = false
			b.UserID = caller.ID
			return b, nil
		},
	}
	r := setupRouter(t, svc, "u1", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", models.BookingInput{Name: "Asha Rao"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u1", gotCaller.ID)
	assert.Equal(t, models.RoleUser, gotCaller.Role)
}

func TestGetBookings_EnvelopeWithCount(t *testing.T) {
	svc := &stubBookingService{
		listFn: func(caller booking.Caller) ([]models.Booking, error) {
			return []models.Booking{*sampleBooking(), *sampleBooking()}, nil
		},
	}
	r := setupRouter(t, svc, "u1", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/bookings", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Data    []models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Data, 2)
}

func TestGetBooking_NotFound(t *testing.T) {
	svc := &stubBookingService{
		getFn: func(caller booking.Caller, id string) (*models.Booking, error) {
			return nil, booking.ErrNotFound
		},
	}
	r := setupRouter(t, svc, "u1", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/bookings/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No booking found with that ID")
}

func TestGetBooking_NotAuthorized(t *testing.T) {
	svc := &stubBookingService{
		getFn: func(caller booking.Caller, id string) (*models.Booking, error) {
			return nil, &booking.NotAuthorizedError{Action: "access"}
		},
	}
	r := setupRouter(t, svc, "u2", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/bookings/b1", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized to access this booking")
}

func TestUpdateBooking_ServerError(t *testing.T) {
	svc := &stubBookingService{
		updateFn: func(caller booking.Caller, id string, update models.BookingUpdate) (*models.Booking, error) {
			return nil, assert.AnError
		},
	}
	r := setupRouter(t, svc, "u1", models.RoleUser)

	w := doJSON(t, r, http.MethodPut, "/api/bookings/b1", models.BookingUpdate{})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server error")
}

func TestDeleteBooking_EmptySuccessPayload(t *testing.T) {
	svc := &stubBookingService{
		deleteFn: func(caller booking.Caller, id string) error {
			return nil
		},
	}
	r := setupRouter(t, svc, "u1", models.RoleUser)

	w := doJSON(t, r, http.MethodDelete, "/api/bookings/b1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{}}`, w.Body.String())
}

func TestGetAvailableServices_PublicCatalog(t *testing.T) {
	r := setupRouter(t, &stubBookingService{}, "", "")

	w := doJSON(t, r, http.MethodGet, "/api/services", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Data    []models.Service `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Count)
	assert.Equal(t, "Bridal Makeup", resp.Data[0].Name)
}
