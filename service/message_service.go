package service

import (
	"context"
	"errors"
	"strings"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

const maxMessageLen = 1000

type MessageService interface {
	Thread(ctx context.Context, user *models.User, bookingID string) (*models.Booking, []*models.Message, error)
	Post(ctx context.Context, user *models.User, bookingID, text string) (*models.Message, error)
}

type messageService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewMessageService(stg storage.IStorage, log logger.ILogger) MessageService {
	return &messageService{stg: stg, log: log}
}

// access loads the booking and its ride, allowing only the booking's passenger
// and the ride's driver through.
func (s *messageService) access(ctx context.Context, user *models.User, bookingID string) (*models.Booking, error) {
	booking, err := s.stg.Booking().GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, apperr.Wrap(err, "loading booking")
	}
	ride, err := s.stg.Ride().GetByID(ctx, booking.RideID)
	if err != nil {
		return nil, apperr.Wrap(err, "loading ride")
	}
	if user.ID != booking.UserID && user.ID != ride.DriverID {
		return nil, apperr.Authorization("Forbidden")
	}
	booking.Ride = ride
	return booking, nil
}

func (s *messageService) Thread(ctx context.Context, user *models.User, bookingID string) (*models.Booking, []*models.Message, error) {
	booking, err := s.access(ctx, user, bookingID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.stg.Message().ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, apperr.Wrap(err, "listing messages")
	}
	return booking, messages, nil
}

func (s *messageService) Post(ctx context.Context, user *models.User, bookingID, text string) (*models.Message, error) {
	if _, err := s.access(ctx, user, bookingID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("Message text is required")
	}
	if len(text) > maxMessageLen {
		return nil, apperr.Validation("Message too long")
	}
	msg, err := s.stg.Message().Create(ctx, &models.Message{
		BookingID: bookingID,
		SenderID:  user.ID,
		Text:      text,
	})
	if err != nil {
		return nil, apperr.Wrap(err, "creating message")
	}
	return msg, nil
}
