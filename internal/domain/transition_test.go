package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTransition_AllowedMoves(t *testing.T) {
	tests := []struct {
		name   string
		from   BookingStatus
		actor  Role
		to     BookingStatus
		effect AvailabilityEffect
	}{
		{"owner confirms pending", BookingStatusPending, RoleOwner, BookingStatusConfirmed, AvailabilityAcquire},
		{"owner cancels pending", BookingStatusPending, RoleOwner, BookingStatusCancelled, AvailabilityUnchanged},
		{"owner cancels confirmed", BookingStatusConfirmed, RoleOwner, BookingStatusCancelled, AvailabilityRelease},
		{"owner completes confirmed", BookingStatusConfirmed, RoleOwner, BookingStatusCompleted, AvailabilityRelease},
		{"renter cancels pending", BookingStatusPending, RoleRenter, BookingStatusCancelled, AvailabilityUnchanged},
		{"renter cancels confirmed", BookingStatusConfirmed, RoleRenter, BookingStatusCancelled, AvailabilityRelease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := ResolveTransition(tt.from, tt.actor, tt.to)
			assert.NoError(t, err)
			assert.Equal(t, tt.to, tr.To)
			assert.Equal(t, tt.effect, tr.Effect)
		})
	}
}

// Every (status, role, target) combination must resolve to exactly one of:
// a permitted transition, Forbidden, or InvalidState. The grid below is the
// full space, so any change to the table shows up here.
func TestResolveTransition_ExhaustiveGrid(t *testing.T) {
	statuses := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted}
	targets := []BookingStatus{BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted}

	allowed := map[[3]string]bool{
		{"pending", "owner", "confirmed"}:    true,
		{"pending", "owner", "cancelled"}:    true,
		{"confirmed", "owner", "cancelled"}:  true,
		{"confirmed", "owner", "completed"}:  true,
		{"pending", "renter", "cancelled"}:   true,
		{"confirmed", "renter", "cancelled"}: true,
	}
	// Targets a role can never request, from any status.
	forbidden := map[[2]string]bool{
		{"renter", "confirmed"}: true,
		{"renter", "completed"}: true,
	}

	for _, from := range statuses {
		for _, actor := range []Role{RoleOwner, RoleRenter} {
			for _, to := range targets {
				tr, err := ResolveTransition(from, actor, to)
				key := [3]string{string(from), string(actor), string(to)}
				switch {
				case allowed[key]:
					assert.NoError(t, err, "%v should be allowed", key)
					assert.Equal(t, to, tr.To)
				case forbidden[[2]string{string(actor), string(to)}]:
					assert.ErrorIs(t, err, ErrForbidden, "%v should be forbidden", key)
				default:
					assert.ErrorIs(t, err, ErrInvalidState, "%v should be an invalid state", key)
				}
			}
		}
	}
}

func TestResolveTransition_TerminalStatesNeverMove(t *testing.T) {
	for _, from := range []BookingStatus{BookingStatusCancelled, BookingStatusCompleted} {
		for _, to := range []BookingStatus{BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted} {
			_, err := ResolveTransition(from, RoleOwner, to)
			assert.Error(t, err, "%s -> %s must be rejected", from, to)
			assert.False(t, errors.Is(err, ErrForbidden), "terminal rejection is about state, not authorization")
		}
	}
}

func TestResolveTransition_InvalidTarget(t *testing.T) {
	_, err := ResolveTransition(BookingStatusPending, RoleOwner, BookingStatusPending)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ResolveTransition(BookingStatusPending, RoleOwner, BookingStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolveTransition_UnknownRole(t *testing.T) {
	_, err := ResolveTransition(BookingStatusPending, RoleUnset, BookingStatusConfirmed)
	assert.ErrorIs(t, err, ErrForbidden)
}
