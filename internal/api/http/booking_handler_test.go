package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/service"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Create(ctx context.Context, renter domain.Actor, vehicleID string, start, end time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, renter, vehicleID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingService) Transition(ctx context.Context, actor domain.Actor, bookingID string, target domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingService) List(ctx context.Context, actor domain.Actor) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

var _ service.BookingService = (*mockBookingService)(nil)

func authenticatedRequest(method, target, body string, role domain.Role) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	user := &domain.User{ID: "user-1", Username: "renter_joe", Role: role}
	ctx := context.WithValue(req.Context(), userContextKey, user)
	return req.WithContext(ctx)
}

func TestParseInstant(t *testing.T) {
	t.Run("accepts RFC 3339 with offset and normalizes to UTC", func(t *testing.T) {
		got, err := parseInstant("2026-09-10T15:00:00+05:00")
		assert.NoError(t, err)
		assert.Equal(t, time.UTC, got.Location())
		assert.Equal(t, time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("accepts bare ISO timestamps as UTC", func(t *testing.T) {
		got, err := parseInstant("2026-09-10T10:00:00")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		for _, s := range []string{"", "2026-09-10", "10:00", "next tuesday"} {
			_, err := parseInstant(s)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument, "input %q", s)
		}
	})
}

func TestBookingHandlerCreate(t *testing.T) {
	t.Run("returns 201 with the pending booking", func(t *testing.T) {
		svc := new(mockBookingService)
		handler := NewBookingHandler(svc)

		start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
		booking := &domain.Booking{ID: "bk-1", VehicleID: "veh-1", Status: domain.BookingStatusPending}
		svc.On("Create", mock.Anything,
			domain.Actor{UserID: "user-1", Role: domain.RoleRenter},
			"veh-1", start, start.Add(2*time.Hour)).Return(booking, nil)

		body := `{"vehicle_id":"veh-1","start_time":"2026-09-10T10:00:00","end_time":"2026-09-10T12:00:00"}`
		rec := httptest.NewRecorder()
		handler.Create(rec, authenticatedRequest(http.MethodPost, "/bookings", body, domain.RoleRenter))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Message string         `json:"message"`
			Booking domain.Booking `json:"booking"`
		}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "bk-1", resp.Booking.ID)
		assert.Equal(t, domain.BookingStatusPending, resp.Booking.Status)
		svc.AssertExpectations(t)
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		handler := NewBookingHandler(new(mockBookingService))

		rec := httptest.NewRecorder()
		handler.Create(rec, authenticatedRequest(http.MethodPost, "/bookings", `{"vehicle_id":"veh-1"}`, domain.RoleRenter))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed timestamp is 400", func(t *testing.T) {
		handler := NewBookingHandler(new(mockBookingService))

		body := `{"vehicle_id":"veh-1","start_time":"tomorrow","end_time":"2026-09-10T12:00:00"}`
		rec := httptest.NewRecorder()
		handler.Create(rec, authenticatedRequest(http.MethodPost, "/bookings", body, domain.RoleRenter))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("role-unset user is 403", func(t *testing.T) {
		handler := NewBookingHandler(new(mockBookingService))

		body := `{"vehicle_id":"veh-1","start_time":"2026-09-10T10:00:00","end_time":"2026-09-10T12:00:00"}`
		rec := httptest.NewRecorder()
		handler.Create(rec, authenticatedRequest(http.MethodPost, "/bookings", body, domain.RoleUnset))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestBookingHandlerUpdateStatus(t *testing.T) {
	t.Run("returns the transitioned booking", func(t *testing.T) {
		svc := new(mockBookingService)
		handler := NewBookingHandler(svc)

		confirmed := &domain.Booking{ID: "bk-1", Status: domain.BookingStatusConfirmed}
		svc.On("Transition", mock.Anything,
			domain.Actor{UserID: "user-1", Role: domain.RoleOwner},
			"bk-1", domain.BookingStatusConfirmed).Return(confirmed, nil)

		req := authenticatedRequest(http.MethodPut, "/bookings/bk-1", `{"status":"confirmed"}`, domain.RoleOwner)
		req = mux.SetURLVars(req, map[string]string{"id": "bk-1"})
		rec := httptest.NewRecorder()
		handler.UpdateStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("conflicting transition is 400", func(t *testing.T) {
		svc := new(mockBookingService)
		handler := NewBookingHandler(svc)

		svc.On("Transition", mock.Anything, mock.Anything, "bk-1", domain.BookingStatusConfirmed).
			Return(nil, domain.ErrInvalidState)

		req := authenticatedRequest(http.MethodPut, "/bookings/bk-1", `{"status":"confirmed"}`, domain.RoleOwner)
		req = mux.SetURLVars(req, map[string]string{"id": "bk-1"})
		rec := httptest.NewRecorder()
		handler.UpdateStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBookingHandlerList(t *testing.T) {
	svc := new(mockBookingService)
	handler := NewBookingHandler(svc)

	svc.On("List", mock.Anything, domain.Actor{UserID: "user-1", Role: domain.RoleRenter}).
		Return([]domain.BookingDetail(nil), nil)

	rec := httptest.NewRecorder()
	handler.List(rec, authenticatedRequest(http.MethodGet, "/bookings", "", domain.RoleRenter))

	assert.Equal(t, http.StatusOK, rec.Code)
	// A renter with no bookings gets an empty array, not null.
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
