package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, owner_id, name, model, type, rent_price_cents, availability, location_lat, location_lng, image1_url, image2_url, created_at`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (` + vehicleColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.OwnerID, v.Name, v.Model, v.Type, v.RentPriceCents,
		v.Availability, v.Location.Lat, v.Location.Lng, v.Image1URL, v.Image2URL, v.CreatedAt)
	return mapError(err)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	// Availability is deliberately not in the column list: a booking
	// transition may have flipped it since v was read, and writing the
	// stale value back would undo that commit.
	query := `UPDATE vehicles SET name=$1, model=$2, type=$3, rent_price_cents=$4,
	          location_lat=$5, location_lng=$6, image1_url=$7, image2_url=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, v.Name, v.Model, v.Type, v.RentPriceCents,
		v.Location.Lat, v.Location.Lng, v.Image1URL, v.Image2URL, v.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res, fmt.Sprintf("vehicle %s", v.ID))
}

func (r *vehicleRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET availability = $1 WHERE id = $2`, available, id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res, fmt.Sprintf("vehicle %s", id))
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback()

	// Same vehicle row lock the booking insert takes, so a creation in
	// flight either commits before the count or fails on the missing row.
	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT true FROM vehicles WHERE id = $1 FOR UPDATE`, id).Scan(&exists)
	if err != nil {
		return mapError(err)
	}

	var live int64
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE vehicle_id = $1 AND status IN ($2, $3)`,
		id, domain.BookingStatusPending, domain.BookingStatusConfirmed,
	).Scan(&live)
	if err != nil {
		return mapError(err)
	}
	if live > 0 {
		return fmt.Errorf("vehicle %s has %d active booking(s): %w", id, live, domain.ErrConflict)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return mapError(err)
	}
	return mapError(tx.Commit())
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *vehicleRepository) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE availability = true ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *vehicleRepository) list(ctx context.Context, query string, args ...any) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, mapError(err)
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return vehicles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Model, &v.Type, &v.RentPriceCents,
		&v.Availability, &v.Location.Lat, &v.Location.Lng, &v.Image1URL, &v.Image2URL, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func requireRow(res sql.Result, what string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
