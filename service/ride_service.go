package service

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type CreateRideInput struct {
	From           string
	To             string
	Date           string
	RideType       string
	Seats          int
	Price          float64
	ParcelWeightKg *float64
	PickupTime     *string
	DropTime       *string
}

// UpdateRideInput carries only the fields a driver may change. RideType is
// deliberately absent: a ride never changes kind after creation.
type UpdateRideInput struct {
	From           *string
	To             *string
	Date           *string
	Seats          *int
	Price          *float64
	ParcelWeightKg *float64
	PickupTime     *string
	DropTime       *string
}

type RideService interface {
	Create(ctx context.Context, driver *models.User, in CreateRideInput) (*models.Ride, error)
	GetByID(ctx context.Context, id string) (*models.Ride, error)
	Search(ctx context.Context, from, to, date string) ([]*models.Ride, error)
	Mine(ctx context.Context, driverID string) ([]*models.Ride, error)
	Update(ctx context.Context, driver *models.User, id string, in UpdateRideInput) (*models.Ride, error)
	Delete(ctx context.Context, driver *models.User, id string) error
}

type rideService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewRideService(stg storage.IStorage, log logger.ILogger) RideService {
	return &rideService{stg: stg, log: log}
}

func parseRideDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func validTimeOfDay(v *string) bool {
	return v == nil || hhmmRe.MatchString(*v)
}

func (s *rideService) Create(ctx context.Context, driver *models.User, in CreateRideInput) (*models.Ride, error) {
	from := strings.TrimSpace(in.From)
	to := strings.TrimSpace(in.To)
	if from == "" || to == "" || strings.TrimSpace(in.Date) == "" {
		return nil, apperr.Validation("Missing required fields")
	}

	date, err := parseRideDate(in.Date)
	if err != nil {
		return nil, apperr.Validation("Invalid date")
	}

	rideType := models.RideType(in.RideType)
	if in.RideType == "" {
		rideType = models.RideTypeSeat
	}
	if !rideType.Valid() {
		return nil, apperr.Validation("Invalid rideType")
	}
	if !validTimeOfDay(in.PickupTime) {
		return nil, apperr.Validation("Invalid pickupTime")
	}
	if !validTimeOfDay(in.DropTime) {
		return nil, apperr.Validation("Invalid dropTime")
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return nil, apperr.Validation("Invalid price")
	}
	if rideType == models.RideTypeSeat && in.Seats < 1 {
		return nil, apperr.Validation("Invalid seats")
	}
	if in.ParcelWeightKg != nil && *in.ParcelWeightKg <= 0 {
		return nil, apperr.Validation("Invalid parcelWeightKg")
	}

	ride := &models.Ride{
		DriverID:       driver.ID,
		From:           from,
		To:             to,
		Date:           date,
		RideType:       rideType,
		Seats:          in.Seats,
		Price:          in.Price,
		ParcelWeightKg: in.ParcelWeightKg,
		PickupTime:     in.PickupTime,
		DropTime:       in.DropTime,
	}
	ride.Normalize()

	ride, err = s.stg.Ride().Create(ctx, ride)
	if err != nil {
		return nil, apperr.Wrap(err, "creating ride")
	}
	s.log.Info("ride created",
		logger.String("ride_id", ride.ID),
		logger.String("driver_id", driver.ID),
		logger.String("type", string(ride.RideType)))
	return ride, nil
}

func (s *rideService) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	ride, err := s.stg.Ride().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Ride not found")
		}
		return nil, apperr.Wrap(err, "loading ride")
	}
	return ride, nil
}

func (s *rideService) Search(ctx context.Context, from, to, date string) ([]*models.Ride, error) {
	var day *time.Time
	if strings.TrimSpace(date) != "" {
		parsed, err := parseRideDate(date)
		if err != nil {
			return nil, apperr.Validation("Invalid date")
		}
		day = &parsed
	}
	rides, err := s.stg.Ride().Search(ctx, strings.TrimSpace(from), strings.TrimSpace(to), day)
	if err != nil {
		return nil, apperr.Wrap(err, "searching rides")
	}
	return rides, nil
}

func (s *rideService) Mine(ctx context.Context, driverID string) ([]*models.Ride, error) {
	rides, err := s.stg.Ride().GetByDriver(ctx, driverID)
	if err != nil {
		return nil, apperr.Wrap(err, "listing driver rides")
	}
	return rides, nil
}

func (s *rideService) Update(ctx context.Context, driver *models.User, id string, in UpdateRideInput) (*models.Ride, error) {
	ride, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// ownership is reported as absence, not as forbidden
	if ride.DriverID != driver.ID {
		return nil, apperr.NotFound("Ride not found")
	}

	if in.From != nil {
		trimmed := strings.TrimSpace(*in.From)
		if trimmed == "" {
			return nil, apperr.Validation("Missing required fields")
		}
		ride.From = trimmed
	}
	if in.To != nil {
		trimmed := strings.TrimSpace(*in.To)
		if trimmed == "" {
			return nil, apperr.Validation("Missing required fields")
		}
		ride.To = trimmed
	}
	if in.Date != nil {
		date, err := parseRideDate(*in.Date)
		if err != nil {
			return nil, apperr.Validation("Invalid date")
		}
		ride.Date = date
	}
	if in.Seats != nil {
		if *in.Seats < 0 || (ride.RideType == models.RideTypeSeat && *in.Seats < 1) {
			return nil, apperr.Validation("Invalid seats")
		}
		ride.Seats = *in.Seats
	}
	if in.Price != nil {
		if *in.Price < 0 || math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0) {
			return nil, apperr.Validation("Invalid price")
		}
		ride.Price = *in.Price
	}
	if in.PickupTime != nil {
		if !hhmmRe.MatchString(*in.PickupTime) {
			return nil, apperr.Validation("Invalid pickupTime")
		}
		ride.PickupTime = in.PickupTime
	}
	if in.DropTime != nil {
		if !hhmmRe.MatchString(*in.DropTime) {
			return nil, apperr.Validation("Invalid dropTime")
		}
		ride.DropTime = in.DropTime
	}
	if in.ParcelWeightKg != nil {
		if *in.ParcelWeightKg <= 0 {
			return nil, apperr.Validation("Invalid parcelWeightKg")
		}
		ride.ParcelWeightKg = in.ParcelWeightKg
	}
	ride.Normalize()

	updated, err := s.stg.Ride().Update(ctx, ride)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Ride not found")
		}
		return nil, apperr.Wrap(err, "updating ride")
	}
	return updated, nil
}

func (s *rideService) Delete(ctx context.Context, driver *models.User, id string) error {
	if err := s.stg.Ride().Delete(ctx, id, driver.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("Ride not found")
		}
		return apperr.Wrap(err, "deleting ride")
	}
	s.log.Info("ride deleted", logger.String("ride_id", id), logger.String("driver_id", driver.ID))
	return nil
}
