package repository

import (
	"context"

	"agrirent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// SetRole assigns a role to a user whose role is still unset. It fails
	// with InvalidState when the role was already assigned, so the
	// set-once rule holds even under concurrent attempts.
	SetRole(ctx context.Context, id string, role domain.Role) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	// Update writes the vehicle's descriptive fields. The availability flag
	// is also written by booking transitions, so it is excluded here and
	// only changes through SetAvailability.
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	SetAvailability(ctx context.Context, id string, available bool) error
	// Delete removes the vehicle unless any pending or confirmed booking
	// still references it, in which case it fails with Conflict. The check
	// and the delete run in one transaction under the vehicle row lock, so
	// a concurrent booking creation cannot slip between them.
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
}

type BookingRepository interface {
	// CreateIfAvailable inserts a pending booking if and only if the vehicle
	// is still available and no live booking overlaps [StartTime, EndTime).
	// The check and the insert run under a per-vehicle exclusive lock, so
	// concurrent overlapping attempts yield at most one success; losers get
	// Conflict (overlap) or InvalidState (vehicle no longer available).
	CreateIfAvailable(ctx context.Context, booking *domain.Booking) error

	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// UpdateStatus applies a booking status change and its availability
	// effect as one transaction. The booking update is conditional on the
	// status still being `from`, and AvailabilityAcquire is conditional on
	// the vehicle still being available; either condition failing rolls the
	// whole transition back with InvalidState.
	UpdateStatus(ctx context.Context, bookingID string, from, to domain.BookingStatus, effect domain.AvailabilityEffect, vehicleID string) error

	ListByRenter(ctx context.Context, renterID string) ([]domain.BookingDetail, error)
	ListByVehicleOwner(ctx context.Context, ownerID string) ([]domain.BookingDetail, error)
}
