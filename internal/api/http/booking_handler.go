package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	VehicleID string `json:"vehicle_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}
	if req.VehicleID == "" || req.StartTime == "" || req.EndTime == "" {
		respondError(w, fmt.Errorf("vehicle_id, start_time and end_time are required: %w", domain.ErrInvalidArgument))
		return
	}

	start, err := parseInstant(req.StartTime)
	if err != nil {
		respondError(w, err)
		return
	}
	end, err := parseInstant(req.EndTime)
	if err != nil {
		respondError(w, err)
		return
	}

	booking, err := h.bookingSvc.Create(r.Context(), actor, req.VehicleID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Booking request sent successfully! Waiting for owner confirmation.",
		"booking": booking,
	})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	bookings, err := h.bookingSvc.List(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.BookingDetail{}
	}
	respondJSON(w, http.StatusOK, bookings)
}

type updateBookingRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidArgument))
		return
	}

	booking, err := h.bookingSvc.Transition(r.Context(), actor, mux.Vars(r)["id"], domain.BookingStatus(req.Status))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Booking %s.", booking.Status),
		"booking": booking,
	})
}

// parseInstant accepts RFC 3339 timestamps, with or without an explicit
// offset, and normalizes them to UTC.
func parseInstant(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time format, use ISO format (YYYY-MM-DDTHH:MM:SS): %w", domain.ErrInvalidArgument)
}
