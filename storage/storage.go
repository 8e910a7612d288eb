package storage

import (
	"context"
	"errors"
	"time"

	"ridecarry/pkg/models"
)

// Sentinel errors the repos translate driver-level failures into. The service
// layer maps them onto the user-facing taxonomy.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate key")
	ErrNotEnoughSeats = errors.New("not enough seats")
	ErrNoTransition   = errors.New("illegal status transition")
)

type IStorage interface {
	User() IUserStorage
	Ride() IRideStorage
	Booking() IBookingStorage
	Message() IMessageStorage
	Notification() INotificationStorage
	Review() IReviewStorage
	Close()
}

type IUserStorage interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, name, phone *string) (*models.User, error)
}

type IRideStorage interface {
	Create(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	GetByID(ctx context.Context, id string) (*models.Ride, error)
	// Search matches from/to as case-insensitive substrings and date as the
	// calendar-day window [date, date+1d); results come back date ascending
	// with driver name/role joined in.
	Search(ctx context.Context, from, to string, date *time.Time) ([]*models.Ride, error)
	GetByDriver(ctx context.Context, driverID string) ([]*models.Ride, error)
	// Update persists the full row for the ride owned by ride.DriverID;
	// ErrNotFound when it does not exist or is owned by someone else.
	Update(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	// Delete removes the ride and all bookings referencing it in one
	// transaction. Same ErrNotFound contract as Update.
	Delete(ctx context.Context, id, driverID string) error
}

type IBookingStorage interface {
	// Create inserts the booking; for seat bookings the ride's seat counter
	// is decremented in the same transaction via a conditional update, and
	// ErrNotEnoughSeats is returned when the floor check fails.
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Booking, error)
	ListByDriver(ctx context.Context, driverID string) ([]*models.Booking, error)
	// Approve moves pending -> confirmed; ErrNoTransition from any other state.
	Approve(ctx context.Context, id string) (*models.Booking, error)
	// Reject moves pending -> rejected and restores reserved seats (seat
	// bookings) in the same transaction, at most once per booking.
	Reject(ctx context.Context, id string) (*models.Booking, error)
	// Cancel moves pending|confirmed -> cancelled with the same seat
	// restoration contract as Reject.
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	ExistsForRideAndUser(ctx context.Context, rideID, userID string) (bool, error)
}

type IMessageStorage interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*models.Message, error)
}

type INotificationStorage interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead sets the read timestamp if currently unset; idempotent.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type IReviewStorage interface {
	// Upsert is keyed on (ride, user): a second submission updates in place.
	Upsert(ctx context.Context, review *models.Review) (*models.Review, error)
	ListByRide(ctx context.Context, rideID string) ([]*models.Review, error)
}
