package domain

import "fmt"

// AvailabilityEffect describes how a booking transition changes the
// vehicle's availability flag. The repository applies the booking update
// and the vehicle update inside a single transaction, so the pair is never
// observable half-applied.
type AvailabilityEffect int

const (
	AvailabilityUnchanged AvailabilityEffect = iota
	// AvailabilityAcquire sets availability=false, and only commits if the
	// vehicle was still available at commit time.
	AvailabilityAcquire
	// AvailabilityRelease sets availability=true unconditionally.
	AvailabilityRelease
)

// Transition is the outcome of a permitted status change.
type Transition struct {
	To     BookingStatus
	Effect AvailabilityEffect
}

type transitionKey struct {
	From  BookingStatus
	Actor Role
	To    BookingStatus
}

// transitions is the complete booking state machine, keyed by
// (current status, actor role, requested status). Anything absent from the
// table is rejected. Owners drive confirm/cancel/complete; renters may only
// cancel their own live bookings.
var transitions = map[transitionKey]Transition{
	{BookingStatusPending, RoleOwner, BookingStatusConfirmed}:    {BookingStatusConfirmed, AvailabilityAcquire},
	{BookingStatusPending, RoleOwner, BookingStatusCancelled}:    {BookingStatusCancelled, AvailabilityUnchanged},
	{BookingStatusConfirmed, RoleOwner, BookingStatusCancelled}:  {BookingStatusCancelled, AvailabilityRelease},
	{BookingStatusConfirmed, RoleOwner, BookingStatusCompleted}:  {BookingStatusCompleted, AvailabilityRelease},
	{BookingStatusPending, RoleRenter, BookingStatusCancelled}:   {BookingStatusCancelled, AvailabilityUnchanged},
	{BookingStatusConfirmed, RoleRenter, BookingStatusCancelled}: {BookingStatusCancelled, AvailabilityRelease},
}

// ResolveTransition looks up the transition for (from, actor, to).
//
// Rejections distinguish authorization from state: a target the actor's
// role may never request (a renter confirming, say) is Forbidden, while a
// role-legal target that is wrong for the current status (completing a
// pending booking, touching a terminal one) is InvalidState.
func ResolveTransition(from BookingStatus, actor Role, to BookingStatus) (Transition, error) {
	switch to {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
	default:
		return Transition{}, fmt.Errorf("status must be %q, %q or %q: %w",
			BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted, ErrInvalidArgument)
	}

	if tr, ok := transitions[transitionKey{from, actor, to}]; ok {
		return tr, nil
	}

	if !roleMayRequest(actor, to) {
		return Transition{}, fmt.Errorf("role %q may not request status %q: %w", actor, to, ErrForbidden)
	}
	return Transition{}, fmt.Errorf("cannot move booking from %q to %q: %w", from, to, ErrInvalidState)
}

// roleMayRequest reports whether any table entry lets the role request the
// target status, regardless of current state.
func roleMayRequest(actor Role, to BookingStatus) bool {
	for k := range transitions {
		if k.Actor == actor && k.To == to {
			return true
		}
	}
	return false
}
