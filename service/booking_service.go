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

type CreateBookingInput struct {
	RideID        string
	Type          string
	SeatsCount    int
	Passengers    []models.BookingPassenger
	ParcelDetails *string
	PaymentMethod string
}

type BookingService interface {
	Create(ctx context.Context, user *models.User, in CreateBookingInput) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListMine(ctx context.Context, user *models.User) ([]*models.Booking, error)
	Approve(ctx context.Context, driver *models.User, bookingID string) (*models.Booking, error)
	Reject(ctx context.Context, driver *models.User, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, user *models.User, bookingID string) (*models.Booking, error)
}

type bookingService struct {
	stg    storage.IStorage
	events Events
	log    logger.ILogger
}

func NewBookingService(stg storage.IStorage, events Events, log logger.ILogger) BookingService {
	return &bookingService{stg: stg, events: events, log: log}
}

func (s *bookingService) Create(ctx context.Context, user *models.User, in CreateBookingInput) (*models.Booking, error) {
	if strings.TrimSpace(in.RideID) == "" {
		return nil, apperr.Validation("rideId is required")
	}
	ride, err := s.stg.Ride().GetByID(ctx, in.RideID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Ride not found")
		}
		return nil, apperr.Wrap(err, "loading ride")
	}

	requested := models.RideType(in.Type)
	if in.Type == "" {
		requested = models.RideTypeSeat
	}
	if err := validateBookingType(ride, requested); err != nil {
		return nil, err
	}

	method := models.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return nil, apperr.Validation("Invalid payment method")
	}

	booking := &models.Booking{
		RideID:        ride.ID,
		UserID:        user.ID,
		Type:          requested,
		PaymentMethod: method,
	}

	switch requested {
	case models.RideTypeSeat:
		if in.SeatsCount < 1 {
			return nil, apperr.Validation("Invalid seatsCount")
		}
		if len(in.Passengers) != in.SeatsCount {
			return nil, apperr.Validation("Passenger details must match seatsCount")
		}
		for _, p := range in.Passengers {
			if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Phone) == "" || p.Age <= 0 {
				return nil, apperr.Validation("Invalid passenger details")
			}
		}
		booking.SeatsCount = in.SeatsCount
		booking.Passengers = in.Passengers
	case models.RideTypeParcel:
		if !ride.ParcelAllowed {
			return nil, apperr.Validation("This post is passengers-only")
		}
		booking.ParcelDetails = in.ParcelDetails
	}

	booking, err = s.stg.Booking().Create(ctx, booking)
	if err != nil {
		if errors.Is(err, storage.ErrNotEnoughSeats) {
			return nil, apperr.Validation("Not enough seats")
		}
		return nil, apperr.Wrap(err, "creating booking")
	}
	s.log.Info("booking created",
		logger.String("booking_id", booking.ID),
		logger.String("ride_id", ride.ID),
		logger.String("user_id", user.ID),
		logger.Int("seats", booking.SeatsCount))

	s.events.BookingCreated(ctx, booking, ride, user)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.stg.Booking().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, apperr.Wrap(err, "loading booking")
	}
	return booking, nil
}

// ListMine returns the caller's bookings: as passenger for riders, as the
// receiving driver for drivers.
func (s *bookingService) ListMine(ctx context.Context, user *models.User) ([]*models.Booking, error) {
	var (
		bookings []*models.Booking
		err      error
	)
	if user.Role == models.RoleDriver {
		bookings, err = s.stg.Booking().ListByDriver(ctx, user.ID)
	} else {
		bookings, err = s.stg.Booking().ListByUser(ctx, user.ID)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "listing bookings")
	}
	return bookings, nil
}

// loadForDecision fetches a booking plus its ride and checks the caller is the
// ride's driver.
func (s *bookingService) loadForDecision(ctx context.Context, driver *models.User, bookingID string) (*models.Booking, *models.Ride, error) {
	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	ride, err := s.stg.Ride().GetByID(ctx, booking.RideID)
	if err != nil {
		return nil, nil, apperr.Wrap(err, "loading ride")
	}
	if ride.DriverID != driver.ID {
		return nil, nil, apperr.Authorization("Forbidden")
	}
	return booking, ride, nil
}

func (s *bookingService) Approve(ctx context.Context, driver *models.User, bookingID string) (*models.Booking, error) {
	_, ride, err := s.loadForDecision(ctx, driver, bookingID)
	if err != nil {
		return nil, err
	}
	booking, err := s.stg.Booking().Approve(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNoTransition) {
			return nil, apperr.Validation("Booking is not pending")
		}
		return nil, apperr.Wrap(err, "approving booking")
	}
	s.log.Info("booking approved", logger.String("booking_id", bookingID), logger.String("driver_id", driver.ID))
	s.events.BookingDecided(ctx, booking, ride)
	return booking, nil
}

func (s *bookingService) Reject(ctx context.Context, driver *models.User, bookingID string) (*models.Booking, error) {
	_, ride, err := s.loadForDecision(ctx, driver, bookingID)
	if err != nil {
		return nil, err
	}
	booking, err := s.stg.Booking().Reject(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNoTransition) {
			return nil, apperr.Validation("Booking is not pending")
		}
		return nil, apperr.Wrap(err, "rejecting booking")
	}
	s.log.Info("booking rejected", logger.String("booking_id", bookingID), logger.String("driver_id", driver.ID))
	s.events.BookingDecided(ctx, booking, ride)
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, user *models.User, bookingID string) (*models.Booking, error) {
	existing, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != user.ID {
		return nil, apperr.Authorization("Forbidden")
	}
	ride, err := s.stg.Ride().GetByID(ctx, existing.RideID)
	if err != nil {
		return nil, apperr.Wrap(err, "loading ride")
	}
	booking, err := s.stg.Booking().Cancel(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrNoTransition) {
			return nil, apperr.Validation("Booking cannot be cancelled")
		}
		return nil, apperr.Wrap(err, "cancelling booking")
	}
	s.log.Info("booking cancelled", logger.String("booking_id", bookingID), logger.String("user_id", user.ID))
	s.events.BookingDecided(ctx, booking, ride)
	return booking, nil
}
