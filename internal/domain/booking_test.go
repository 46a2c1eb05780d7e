package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	base := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	b := &Booking{StartTime: at(0), EndTime: at(2)} // [10:00, 12:00)

	t.Run("Partial overlap from the right", func(t *testing.T) {
		assert.True(t, b.Overlaps(at(1), at(3))) // [11:00, 13:00)
	})

	t.Run("Contained window", func(t *testing.T) {
		assert.True(t, b.Overlaps(at(0), at(1)))
	})

	t.Run("Identical window", func(t *testing.T) {
		assert.True(t, b.Overlaps(at(0), at(2)))
	})

	t.Run("Back-to-back windows do not overlap", func(t *testing.T) {
		// Half-open intervals: an end shared with a start is fine.
		assert.False(t, b.Overlaps(at(2), at(4)))
		assert.False(t, b.Overlaps(at(-2), at(0)))
	})

	t.Run("Disjoint window", func(t *testing.T) {
		assert.False(t, b.Overlaps(at(4), at(6)))
	})
}

func TestBookingStatusClassification(t *testing.T) {
	assert.True(t, BookingStatusPending.Live())
	assert.True(t, BookingStatusConfirmed.Live())
	assert.False(t, BookingStatusCancelled.Live())
	assert.False(t, BookingStatusCompleted.Live())

	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatusConfirmed.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.True(t, BookingStatusCompleted.Terminal())
}
