package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, vehicleRepo repository.VehicleRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo, vehicleRepo: vehicleRepo}
}

func (s *bookingService) Create(ctx context.Context, renter domain.Actor, vehicleID string, start, end time.Time) (*domain.Booking, error) {
	if !HasRole(renter, domain.RoleRenter) {
		return nil, fmt.Errorf("only renters may create bookings: %w", domain.ErrForbidden)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Availability {
		return nil, fmt.Errorf("vehicle %s is not available for booking: %w", vehicleID, domain.ErrInvalidState)
	}
	if vehicle.OwnerID == renter.UserID {
		return nil, fmt.Errorf("cannot book your own vehicle: %w", domain.ErrForbidden)
	}

	// Client-supplied instants are normalized to UTC before any comparison.
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return nil, fmt.Errorf("start time must be before end time: %w", domain.ErrInvalidArgument)
	}
	if start.Before(time.Now().UTC()) {
		return nil, fmt.Errorf("cannot book in the past: %w", domain.ErrInvalidArgument)
	}

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		RenterID:  renter.UserID,
		VehicleID: vehicleID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.BookingStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	// The overlap check and the insert are one serialized unit inside the
	// repository; the availability and ownership checks above are advisory
	// fast paths re-validated there.
	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	logger.Info("booking requested", "booking_id", booking.ID, "vehicle_id", vehicleID, "renter_id", renter.UserID)
	return booking, nil
}

func (s *bookingService) Transition(ctx context.Context, actor domain.Actor, bookingID string, target domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleOwner:
		vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
		if err != nil {
			return nil, err
		}
		if !IsOwnerOf(actor, vehicle) {
			return nil, fmt.Errorf("not the owner of the booked vehicle: %w", domain.ErrForbidden)
		}
	case domain.RoleRenter:
		if !IsRenterOf(actor, booking) {
			return nil, fmt.Errorf("not your booking: %w", domain.ErrForbidden)
		}
	default:
		return nil, fmt.Errorf("role %q may not change bookings: %w", actor.Role, domain.ErrForbidden)
	}

	tr, err := domain.ResolveTransition(booking.Status, actor.Role, target)
	if err != nil {
		return nil, err
	}

	// The repository applies the booking update and the availability effect
	// as one transaction, conditionally on the status we just read. If a
	// concurrent transition won, the conditional update misses and the
	// whole unit rolls back.
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, tr.To, tr.Effect, booking.VehicleID); err != nil {
		return nil, err
	}

	booking.Status = tr.To
	logger.Info("booking transitioned", "booking_id", booking.ID, "status", tr.To, "actor_role", actor.Role)
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, actor domain.Actor) ([]domain.BookingDetail, error) {
	if actor.Role == domain.RoleOwner {
		return s.bookingRepo.ListByVehicleOwner(ctx, actor.UserID)
	}
	return s.bookingRepo.ListByRenter(ctx, actor.UserID)
}
