package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Live reports whether the booking occupies its time window for overlap
// purposes. Only live bookings block other bookings on the same vehicle.
func (s BookingStatus) Live() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking holds a renter's claim on a vehicle over the half-open interval
// [StartTime, EndTime). All instants are UTC.
type Booking struct {
	ID        string        `json:"id"`
	RenterID  string        `json:"renter_id"`
	VehicleID string        `json:"vehicle_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Overlaps reports whether the booking's window shares any instant with
// [start, end), using the half-open interval test.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// RenterSummary is a renter's identity with credential fields stripped,
// embedded in owner-facing booking listings.
type RenterSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
}

// BookingDetail is the read-only projection joining a booking with its
// vehicle and, for owner listings, the renter's identity.
type BookingDetail struct {
	Booking
	Vehicle Vehicle        `json:"vehicle_details"`
	Renter  *RenterSummary `json:"renter_details,omitempty"`
}
