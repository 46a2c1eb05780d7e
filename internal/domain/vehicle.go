package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Vehicle struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Name           string    `json:"vehicle_name"`
	Model          string    `json:"model"`
	Type           string    `json:"type"`
	RentPriceCents int64     `json:"rent_price_cents"`
	Availability   bool      `json:"availability"`
	Location       Location  `json:"location"`
	Image1URL      string    `json:"image1_url,omitempty"`
	Image2URL      string    `json:"image2_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ParseRentPrice converts a client-supplied decimal price into cents.
// Malformed or negative input is an InvalidArgument.
func ParseRentPrice(s string) (int64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("rent price must be a valid number: %w", ErrInvalidArgument)
	}
	if v < 0 {
		return 0, fmt.Errorf("rent price must not be negative: %w", ErrInvalidArgument)
	}
	return int64(math.Round(v * 100)), nil
}
