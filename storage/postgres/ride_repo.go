package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

type rideRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewRideRepo(db *pgxpool.Pool, log logger.ILogger) storage.IRideStorage {
	return &rideRepo{db: db, log: log}
}

func (r *rideRepo) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	ride.ID = uuid.NewString()

	query := `
		INSERT INTO rides (id, driver_id, from_place, to_place, date, ride_type, seats, price, parcel_allowed, parcel_weight_kg, pickup_time, drop_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		ride.ID,
		ride.DriverID,
		ride.From,
		ride.To,
		ride.Date,
		string(ride.RideType),
		ride.Seats,
		ride.Price,
		ride.ParcelAllowed,
		ride.ParcelWeightKg,
		ride.PickupTime,
		ride.DropTime,
	).Scan(&ride.CreatedAt, &ride.UpdatedAt)

	if err != nil {
		r.log.Error("failed to create ride", logger.Error(err))
		return nil, err
	}

	return ride, nil
}

func (r *rideRepo) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	query := `
		SELECT r.id, r.driver_id, r.from_place, r.to_place, r.date, r.ride_type, r.seats, r.price,
		       r.parcel_allowed, r.parcel_weight_kg, r.pickup_time, r.drop_time, r.created_at, r.updated_at,
		       u.name, u.role
		FROM rides r
		JOIN users u ON r.driver_id = u.id
		WHERE r.id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	ride, err := scanRide(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get ride by id", logger.String("id", id), logger.Error(err))
		return nil, err
	}
	return ride, nil
}

func (r *rideRepo) Search(ctx context.Context, from, to string, date *time.Time) ([]*models.Ride, error) {
	query := `
		SELECT r.id, r.driver_id, r.from_place, r.to_place, r.date, r.ride_type, r.seats, r.price,
		       r.parcel_allowed, r.parcel_weight_kg, r.pickup_time, r.drop_time, r.created_at, r.updated_at,
		       u.name, u.role
		FROM rides r
		JOIN users u ON r.driver_id = u.id
		WHERE ($1 = '' OR r.from_place ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR r.to_place ILIKE '%' || $2 || '%')
		  AND ($3::timestamptz IS NULL OR (r.date >= $3 AND r.date < $3 + interval '1 day'))
		ORDER BY r.date ASC
	`
	return r.scanRides(ctx, query, from, to, date)
}

func (r *rideRepo) GetByDriver(ctx context.Context, driverID string) ([]*models.Ride, error) {
	query := `
		SELECT r.id, r.driver_id, r.from_place, r.to_place, r.date, r.ride_type, r.seats, r.price,
		       r.parcel_allowed, r.parcel_weight_kg, r.pickup_time, r.drop_time, r.created_at, r.updated_at,
		       u.name, u.role
		FROM rides r
		JOIN users u ON r.driver_id = u.id
		WHERE r.driver_id = $1
		ORDER BY r.created_at DESC
	`
	return r.scanRides(ctx, query, driverID)
}

func (r *rideRepo) Update(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	query := `
		UPDATE rides
		SET from_place = $1, to_place = $2, date = $3, seats = $4, price = $5,
		    parcel_allowed = $6, parcel_weight_kg = $7, pickup_time = $8, drop_time = $9,
		    updated_at = now()
		WHERE id = $10 AND driver_id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		ride.From,
		ride.To,
		ride.Date,
		ride.Seats,
		ride.Price,
		ride.ParcelAllowed,
		ride.ParcelWeightKg,
		ride.PickupTime,
		ride.DropTime,
		ride.ID,
		ride.DriverID,
	).Scan(&ride.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to update ride", logger.String("id", ride.ID), logger.Error(err))
		return nil, err
	}
	return ride, nil
}

// Delete removes associated bookings first so no dangling references survive,
// then the ride itself, all in one transaction.
func (r *rideRepo) Delete(ctx context.Context, id, driverID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE ride_id = $1`, id); err != nil {
		r.log.Error("failed to delete ride bookings", logger.String("ride_id", id), logger.Error(err))
		return err
	}

	res, err := tx.Exec(ctx, `DELETE FROM rides WHERE id = $1 AND driver_id = $2`, id, driverID)
	if err != nil {
		r.log.Error("failed to delete ride", logger.String("id", id), logger.Error(err))
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *rideRepo) scanRides(ctx context.Context, query string, args ...interface{}) ([]*models.Ride, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*models.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

func scanRide(row pgx.Row) (*models.Ride, error) {
	var ride models.Ride
	var rideType, driverRole string
	err := row.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.From,
		&ride.To,
		&ride.Date,
		&rideType,
		&ride.Seats,
		&ride.Price,
		&ride.ParcelAllowed,
		&ride.ParcelWeightKg,
		&ride.PickupTime,
		&ride.DropTime,
		&ride.CreatedAt,
		&ride.UpdatedAt,
		&ride.DriverName,
		&driverRole,
	)
	if err != nil {
		return nil, err
	}
	ride.RideType = models.RideType(rideType)
	ride.DriverRole = models.Role(driverRole)
	return &ride, nil
}
