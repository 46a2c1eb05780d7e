package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, renter_id, vehicle_id, start_time, end_time, status, created_at`

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback()

	// Locking the vehicle row serializes check-then-insert per vehicle:
	// of N concurrent overlapping attempts, one holds the lock, inserts,
	// and commits; the rest observe its booking and get Conflict.
	var available bool
	err = tx.QueryRowContext(ctx, `SELECT availability FROM vehicles WHERE id = $1 FOR UPDATE`, b.VehicleID).Scan(&available)
	if err != nil {
		return mapError(err)
	}
	if !available {
		return fmt.Errorf("vehicle %s is not available: %w", b.VehicleID, domain.ErrInvalidState)
	}

	// Half-open interval overlap against live bookings only.
	var overlapping int64
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE vehicle_id = $1 AND status IN ($2, $3) AND start_time < $4 AND end_time > $5`,
		b.VehicleID, domain.BookingStatusPending, domain.BookingStatusConfirmed, b.EndTime, b.StartTime,
	).Scan(&overlapping)
	if err != nil {
		return mapError(err)
	}
	if overlapping > 0 {
		return fmt.Errorf("vehicle %s is already booked during this period: %w", b.VehicleID, domain.ErrConflict)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.RenterID, b.VehicleID, b.StartTime, b.EndTime, b.Status, b.CreatedAt)
	if err != nil {
		return mapError(err)
	}

	// The schema's exclusion constraint over (vehicle_id, time range) is a
	// backstop for the same invariant; a violation surfaces as Conflict.
	return mapError(tx.Commit())
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.RenterID, &b.VehicleID, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID string, from, to domain.BookingStatus, effect domain.AvailabilityEffect, vehicleID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback()

	// Conditional on the status still being `from`, so a transition decided
	// against stale state cannot commit.
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`, to, bookingID, from)
	if err != nil {
		return mapError(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return fmt.Errorf("booking %s is no longer %q: %w", bookingID, from, domain.ErrInvalidState)
	}

	switch effect {
	case domain.AvailabilityAcquire:
		res, err := tx.ExecContext(ctx, `UPDATE vehicles SET availability = false WHERE id = $1 AND availability = true`, vehicleID)
		if err != nil {
			return mapError(err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return mapError(err)
		}
		if rows == 0 {
			return fmt.Errorf("vehicle %s is no longer available: %w", vehicleID, domain.ErrInvalidState)
		}
	case domain.AvailabilityRelease:
		if _, err := tx.ExecContext(ctx, `UPDATE vehicles SET availability = true WHERE id = $1`, vehicleID); err != nil {
			return mapError(err)
		}
	}

	return mapError(tx.Commit())
}

const bookingDetailColumns = `b.id, b.renter_id, b.vehicle_id, b.start_time, b.end_time, b.status, b.created_at,
	       v.id, v.owner_id, v.name, v.model, v.type, v.rent_price_cents, v.availability, v.location_lat, v.location_lng, v.image1_url, v.image2_url, v.created_at`

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + `
	          FROM bookings b JOIN vehicles v ON v.id = b.vehicle_id
	          WHERE b.renter_id = $1 ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, renterID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectDetails(rows, false)
}

func (r *bookingRepository) ListByVehicleOwner(ctx context.Context, ownerID string) ([]domain.BookingDetail, error) {
	// Owner listings carry the renter's identity, password hash excluded.
	query := `SELECT ` + bookingDetailColumns + `, u.id, u.username, u.fullname, u.phone
	          FROM bookings b
	          JOIN vehicles v ON v.id = b.vehicle_id
	          JOIN users u ON u.id = b.renter_id
	          WHERE v.owner_id = $1 ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectDetails(rows, true)
}

func collectDetails(rows *sql.Rows, withRenter bool) ([]domain.BookingDetail, error) {
	var details []domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		dest := []any{
			&d.ID, &d.RenterID, &d.VehicleID, &d.StartTime, &d.EndTime, &d.Status, &d.CreatedAt,
			&d.Vehicle.ID, &d.Vehicle.OwnerID, &d.Vehicle.Name, &d.Vehicle.Model, &d.Vehicle.Type,
			&d.Vehicle.RentPriceCents, &d.Vehicle.Availability, &d.Vehicle.Location.Lat, &d.Vehicle.Location.Lng,
			&d.Vehicle.Image1URL, &d.Vehicle.Image2URL, &d.Vehicle.CreatedAt,
		}
		if withRenter {
			d.Renter = &domain.RenterSummary{}
			dest = append(dest, &d.Renter.ID, &d.Renter.Username, &d.Renter.Fullname, &d.Renter.Phone)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, mapError(err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return details, nil
}
