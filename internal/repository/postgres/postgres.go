package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		UserRepository:    NewUserRepository(db),
		VehicleRepository: NewVehicleRepository(db),
		BookingRepository: NewBookingRepository(db),
	}
}

// mapError translates driver errors into the domain taxonomy. Constraint
// violations (duplicate username, the booking exclusion constraint) become
// Conflict; everything else from the driver is treated as a transient
// storage failure and surfaces as Unavailable.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23P01": // unique_violation, exclusion_violation
			return fmt.Errorf("%s: %w", pqErr.Message, domain.ErrConflict)
		}
	}
	return fmt.Errorf("%v: %w", err, domain.ErrUnavailable)
}
