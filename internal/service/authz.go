package service

import "agrirent-backend/internal/domain"

// Authorization predicates consumed before mutations. Pure and stateless;
// the callers turn a false result into Forbidden.

// IsOwnerOf reports whether the actor is the owning user of the vehicle.
func IsOwnerOf(actor domain.Actor, vehicle *domain.Vehicle) bool {
	return actor.Role == domain.RoleOwner && vehicle != nil && vehicle.OwnerID == actor.UserID
}

// IsRenterOf reports whether the actor is the renter who created the booking.
func IsRenterOf(actor domain.Actor, booking *domain.Booking) bool {
	return actor.Role == domain.RoleRenter && booking != nil && booking.RenterID == actor.UserID
}

// HasRole reports whether the actor holds the given role.
func HasRole(actor domain.Actor, role domain.Role) bool {
	return actor.Role == role
}
