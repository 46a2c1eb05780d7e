package jobs

import (
	"context"
	"time"

	"agrirent-backend/internal/logger"
)

// AuditVehicleAvailability flags vehicles whose availability flag
// contradicts their bookings: available vehicles holding a confirmed
// booking, and unavailable vehicles holding none. Both transitions keep
// the two in sync transactionally, so any hit here means manual
// intervention happened or a bug slipped through.
func (jr *JobRunner) AuditVehicleAvailability() {
	jr.runWithRecovery("AuditVehicleAvailability", func() {
		ctx := context.Background()

		query := `
			SELECT v.id, v.availability, count(b.id) AS confirmed
			FROM vehicles v
			LEFT JOIN bookings b ON b.vehicle_id = v.id AND b.status = 'confirmed'
			GROUP BY v.id, v.availability
			HAVING (v.availability = true AND count(b.id) > 0)
			    OR (v.availability = false AND count(b.id) = 0)
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to audit vehicle availability", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var vehicleID string
			var available bool
			var confirmed int64
			if err := rows.Scan(&vehicleID, &available, &confirmed); err != nil {
				logger.Error("Failed to scan availability drift row", "error", err)
				continue
			}
			count++
			logger.Warn("Vehicle availability drift detected",
				"vehicle_id", vehicleID,
				"availability", available,
				"confirmed_bookings", confirmed)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating availability audit", "error", err)
			return
		}

		logger.Info("Vehicle availability audit finished", "drifted", count)
	})
}

// ReportOverdueBookings logs confirmed bookings whose end time has passed
// without the owner marking them completed.
func (jr *JobRunner) ReportOverdueBookings() {
	jr.runWithRecovery("ReportOverdueBookings", func() {
		ctx := context.Background()

		query := `
			SELECT id, renter_id, vehicle_id, end_time
			FROM bookings
			WHERE status = 'confirmed' AND end_time < $1
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to query overdue bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, renterID, vehicleID string
			var endTime time.Time
			if err := rows.Scan(&id, &renterID, &vehicleID, &endTime); err != nil {
				logger.Error("Failed to scan overdue booking", "error", err)
				continue
			}
			count++
			logger.Warn("Booking past its end time without completion",
				"booking_id", id,
				"renter_id", renterID,
				"vehicle_id", vehicleID,
				"end_time", endTime)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue bookings", "error", err)
			return
		}

		logger.Info("Overdue booking report finished", "overdue", count)
	})
}
