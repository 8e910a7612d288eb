package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

type messageRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewMessageRepo(db *pgxpool.Pool, log logger.ILogger) storage.IMessageStorage {
	return &messageRepo{db: db, log: log}
}

func (r *messageRepo) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.ID = uuid.NewString()

	query := `
		WITH inserted AS (
			INSERT INTO messages (id, booking_id, sender_id, text)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, sender_id
		)
		SELECT i.created_at, u.name, u.role
		FROM inserted i
		JOIN users u ON i.sender_id = u.id
	`
	var senderRole string
	err := r.db.QueryRow(ctx, query, msg.ID, msg.BookingID, msg.SenderID, msg.Text).
		Scan(&msg.CreatedAt, &msg.SenderName, &senderRole)
	if err != nil {
		r.log.Error("failed to create message", logger.String("booking_id", msg.BookingID), logger.Error(err))
		return nil, err
	}
	msg.SenderRole = models.Role(senderRole)
	return msg, nil
}

func (r *messageRepo) ListByBooking(ctx context.Context, bookingID string) ([]*models.Message, error) {
	query := `
		SELECT m.id, m.booking_id, m.sender_id, m.text, m.created_at, u.name, u.role
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.booking_id = $1
		ORDER BY m.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("failed to list messages", logger.String("booking_id", bookingID), logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		var m models.Message
		var senderRole string
		if err := rows.Scan(&m.ID, &m.BookingID, &m.SenderID, &m.Text, &m.CreatedAt, &m.SenderName, &senderRole); err != nil {
			return nil, err
		}
		m.SenderRole = models.Role(senderRole)
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}
