package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

type reviewRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewReviewRepo(db *pgxpool.Pool, log logger.ILogger) storage.IReviewStorage {
	return &reviewRepo{db: db, log: log}
}

// Upsert relies on the (ride_id, user_id) unique key: a concurrent duplicate
// insert resolves to a single stored review instead of racing to an error.
func (r *reviewRepo) Upsert(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.ID = uuid.NewString()

	query := `
		INSERT INTO reviews (id, ride_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ride_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		review.ID, review.RideID, review.UserID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, storage.ErrDuplicate
		}
		r.log.Error("failed to upsert review", logger.String("ride_id", review.RideID), logger.Error(err))
		return nil, err
	}
	return review, nil
}

func (r *reviewRepo) ListByRide(ctx context.Context, rideID string) ([]*models.Review, error) {
	query := `
		SELECT rv.id, rv.ride_id, rv.user_id, rv.rating, rv.comment, rv.created_at, rv.updated_at,
		       u.name, u.avatar_path, u.role
		FROM reviews rv
		JOIN users u ON rv.user_id = u.id
		WHERE rv.ride_id = $1
		ORDER BY rv.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, rideID)
	if err != nil {
		r.log.Error("failed to list reviews", logger.String("ride_id", rideID), logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var rv models.Review
		var role string
		err := rows.Scan(&rv.ID, &rv.RideID, &rv.UserID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.UpdatedAt, &rv.ReviewerName, &rv.ReviewerAvatar, &role)
		if err != nil {
			return nil, err
		}
		rv.ReviewerRole = models.Role(role)
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}
