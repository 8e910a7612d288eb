package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

type notificationRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewNotificationRepo(db *pgxpool.Pool, log logger.ILogger) storage.INotificationStorage {
	return &notificationRepo{db: db, log: log}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	n.ID = uuid.NewString()

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, booking_id, ride_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.BookingID, n.RideID,
	).Scan(&n.CreatedAt)
	if err != nil {
		r.log.Error("failed to create notification", logger.String("user_id", n.UserID), logger.Error(err))
		return nil, err
	}
	return n, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, booking_id, ride_id, read_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.log.Error("failed to list notifications", logger.String("user_id", userID), logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.BookingID, &n.RideID, &n.ReadAt, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}

// CountUnread is a distinct count so the total is correct even when it
// exceeds the list page size.
func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`,
		userID,
	).Scan(&count)
	if err != nil {
		r.log.Error("failed to count unread notifications", logger.String("user_id", userID), logger.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE notifications SET read_at = now()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL
	`, id, userID)
	if err != nil {
		r.log.Error("failed to mark notification read", logger.String("id", id), logger.Error(err))
		return err
	}
	if res.RowsAffected() > 0 {
		return nil
	}

	// already read is fine; missing is not
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2)`,
		id, userID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return storage.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read_at = now() WHERE user_id = $1 AND read_at IS NULL`,
		userID,
	)
	if err != nil {
		r.log.Error("failed to mark all notifications read", logger.String("user_id", userID), logger.Error(err))
	}
	return err
}
