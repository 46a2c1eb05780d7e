package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) Create(ctx context.Context, owner domain.Actor, in VehicleInput) (*domain.Vehicle, error) {
	if !HasRole(owner, domain.RoleOwner) {
		return nil, fmt.Errorf("only owners may list vehicles: %w", domain.ErrForbidden)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Model) == "" || strings.TrimSpace(in.Type) == "" {
		return nil, fmt.Errorf("vehicle name, model and type are required: %w", domain.ErrInvalidArgument)
	}

	priceCents, err := domain.ParseRentPrice(in.RentPrice)
	if err != nil {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		ID:             uuid.NewString(),
		OwnerID:        owner.UserID,
		Name:           strings.TrimSpace(in.Name),
		Model:          strings.TrimSpace(in.Model),
		Type:           strings.TrimSpace(in.Type),
		RentPriceCents: priceCents,
		Availability:   true,
		Location:       in.Location,
		Image1URL:      in.Image1URL,
		Image2URL:      in.Image2URL,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	logger.Info("vehicle listed", "vehicle_id", vehicle.ID, "owner_id", owner.UserID)
	return vehicle, nil
}

func (s *vehicleService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Owners only see their own fleet; renters may view any vehicle.
	if actor.Role == domain.RoleOwner && !IsOwnerOf(actor, vehicle) {
		return nil, fmt.Errorf("not the owner of vehicle %s: %w", id, domain.ErrForbidden)
	}
	return vehicle, nil
}

func (s *vehicleService) List(ctx context.Context, actor domain.Actor) ([]domain.Vehicle, error) {
	if actor.Role == domain.RoleOwner {
		return s.vehicleRepo.ListByOwner(ctx, actor.UserID)
	}
	return s.vehicleRepo.ListAvailable(ctx)
}

func (s *vehicleService) Update(ctx context.Context, owner domain.Actor, id string, patch VehiclePatch) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsOwnerOf(owner, vehicle) {
		return nil, fmt.Errorf("not the owner of vehicle %s: %w", id, domain.ErrForbidden)
	}

	if patch.Name != nil {
		vehicle.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Model != nil {
		vehicle.Model = strings.TrimSpace(*patch.Model)
	}
	if patch.Type != nil {
		vehicle.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.RentPrice != nil {
		cents, err := domain.ParseRentPrice(*patch.RentPrice)
		if err != nil {
			return nil, err
		}
		vehicle.RentPriceCents = cents
	}
	if patch.Location != nil {
		vehicle.Location = *patch.Location
	}
	if patch.Image1URL != nil {
		vehicle.Image1URL = *patch.Image1URL
	}
	if patch.Image2URL != nil {
		vehicle.Image2URL = *patch.Image2URL
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	// Availability is also flipped by booking transitions, so an explicit
	// patch goes through its own statement instead of riding the
	// read-modify-write above.
	if patch.Availability != nil {
		if err := s.vehicleRepo.SetAvailability(ctx, id, *patch.Availability); err != nil {
			return nil, err
		}
		vehicle.Availability = *patch.Availability
	}
	return vehicle, nil
}

func (s *vehicleService) Delete(ctx context.Context, owner domain.Actor, id string) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !IsOwnerOf(owner, vehicle) {
		return fmt.Errorf("not the owner of vehicle %s: %w", id, domain.ErrForbidden)
	}

	// The repository refuses deletion while live bookings reference the
	// vehicle; that surfaces as Conflict.
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("vehicle removed", "vehicle_id", id, "owner_id", owner.UserID)
	return nil
}
