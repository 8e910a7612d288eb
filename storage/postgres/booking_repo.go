package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

type bookingRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewBookingRepo(db *pgxpool.Pool, log logger.ILogger) storage.IBookingStorage {
	return &bookingRepo{db: db, log: log}
}

// Create reserves seats and inserts the booking atomically. The seat
// decrement is a single conditional update with a floor check, never a
// read-modify-write, so concurrent requests cannot drive seats negative.
func (r *bookingRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if b.Type == models.RideTypeSeat {
		res, err := tx.Exec(ctx, `
			UPDATE rides
			SET seats = seats - $1, updated_at = now()
			WHERE id = $2 AND ride_type = 'seat' AND seats >= $1
		`, b.SeatsCount, b.RideID)
		if err != nil {
			r.log.Error("failed to reserve seats", logger.String("ride_id", b.RideID), logger.Error(err))
			return nil, err
		}
		if res.RowsAffected() == 0 {
			return nil, storage.ErrNotEnoughSeats
		}
	}

	b.ID = uuid.NewString()
	b.Status = models.BookingPending

	var passengers []byte
	if b.Passengers != nil {
		if passengers, err = json.Marshal(b.Passengers); err != nil {
			return nil, err
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (id, ride_id, user_id, type, seats_count, passengers, parcel_details, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`,
		b.ID,
		b.RideID,
		b.UserID,
		string(b.Type),
		b.SeatsCount,
		passengers,
		b.ParcelDetails,
		string(b.PaymentMethod),
		string(b.Status),
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create booking", logger.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `
		SELECT id, ride_id, user_id, type, seats_count, passengers, parcel_details, payment_method, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var b models.Booking
	var bType, payment, status string
	var passengers []byte

	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.RideID, &b.UserID, &bType, &b.SeatsCount, &passengers,
		&b.ParcelDetails, &payment, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get booking by id", logger.String("id", id), logger.Error(err))
		return nil, err
	}

	b.Type = models.RideType(bType)
	b.PaymentMethod = models.PaymentMethod(payment)
	b.Status = models.BookingStatus(status)
	if len(passengers) > 0 {
		if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
			return nil, err
		}
	}
	return &b, nil
}

const bookingListQuery = `
	SELECT b.id, b.ride_id, b.user_id, b.type, b.seats_count, b.passengers, b.parcel_details,
	       b.payment_method, b.status, b.created_at, b.updated_at,
	       r.id, r.driver_id, r.from_place, r.to_place, r.date, r.ride_type, r.seats, r.price,
	       r.parcel_allowed, r.parcel_weight_kg, r.pickup_time, r.drop_time, r.created_at, r.updated_at,
	       u.name, u.role
	FROM bookings b
	JOIN rides r ON b.ride_id = r.id
	JOIN users u ON b.user_id = u.id
`

func (r *bookingRepo) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	return r.scanBookings(ctx, bookingListQuery+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
}

func (r *bookingRepo) ListByDriver(ctx context.Context, driverID string) ([]*models.Booking, error) {
	return r.scanBookings(ctx, bookingListQuery+` WHERE r.driver_id = $1 ORDER BY b.created_at DESC`, driverID)
}

func (r *bookingRepo) Approve(ctx context.Context, id string) (*models.Booking, error) {
	return r.transition(ctx, id, models.BookingConfirmed, []models.BookingStatus{models.BookingPending}, false)
}

func (r *bookingRepo) Reject(ctx context.Context, id string) (*models.Booking, error) {
	return r.transition(ctx, id, models.BookingRejected, []models.BookingStatus{models.BookingPending}, true)
}

func (r *bookingRepo) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	return r.transition(ctx, id, models.BookingCancelled,
		[]models.BookingStatus{models.BookingPending, models.BookingConfirmed}, true)
}

// transition applies the status change only from an allowed state, and when
// restoreSeats is set gives reserved seats back to the ride in the same
// transaction. The row lock plus the status guard make the seat restoration
// happen at most once per booking.
func (r *bookingRepo) transition(ctx context.Context, id string, to models.BookingStatus, from []models.BookingStatus, restoreSeats bool) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var b models.Booking
	var bType, payment, status string
	var passengers []byte
	err = tx.QueryRow(ctx, `
		SELECT id, ride_id, user_id, type, seats_count, passengers, parcel_details, payment_method, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&b.ID, &b.RideID, &b.UserID, &bType, &b.SeatsCount, &passengers,
		&b.ParcelDetails, &payment, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to load booking for transition", logger.String("id", id), logger.Error(err))
		return nil, err
	}

	b.Type = models.RideType(bType)
	b.PaymentMethod = models.PaymentMethod(payment)
	b.Status = models.BookingStatus(status)
	if len(passengers) > 0 {
		if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
			return nil, err
		}
	}

	allowed := false
	for _, s := range from {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, storage.ErrNoTransition
	}

	if _, err := tx.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2
	`, string(to), id); err != nil {
		r.log.Error("failed to update booking status", logger.String("id", id), logger.Error(err))
		return nil, err
	}

	if restoreSeats && b.Type == models.RideTypeSeat {
		if _, err := tx.Exec(ctx, `
			UPDATE rides SET seats = seats + $1, updated_at = now() WHERE id = $2
		`, b.SeatsCount, b.RideID); err != nil {
			r.log.Error("failed to restore seats", logger.String("ride_id", b.RideID), logger.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	b.Status = to
	return &b, nil
}

func (r *bookingRepo) ExistsForRideAndUser(ctx context.Context, rideID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE ride_id = $1 AND user_id = $2)`,
		rideID, userID,
	).Scan(&exists)
	if err != nil {
		r.log.Error("failed to check booking existence", logger.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *bookingRepo) scanBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		var ride models.Ride
		var bType, payment, status, rideType, userRole string
		var passengers []byte

		err := rows.Scan(
			&b.ID, &b.RideID, &b.UserID, &bType, &b.SeatsCount, &passengers,
			&b.ParcelDetails, &payment, &status, &b.CreatedAt, &b.UpdatedAt,
			&ride.ID, &ride.DriverID, &ride.From, &ride.To, &ride.Date, &rideType,
			&ride.Seats, &ride.Price, &ride.ParcelAllowed, &ride.ParcelWeightKg,
			&ride.PickupTime, &ride.DropTime, &ride.CreatedAt, &ride.UpdatedAt,
			&b.UserName, &userRole,
		)
		if err != nil {
			return nil, err
		}

		b.Type = models.RideType(bType)
		b.PaymentMethod = models.PaymentMethod(payment)
		b.Status = models.BookingStatus(status)
		b.UserRole = models.Role(userRole)
		ride.RideType = models.RideType(rideType)
		b.Ride = &ride
		if len(passengers) > 0 {
			if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
				return nil, err
			}
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
