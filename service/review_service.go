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

type ReviewService interface {
	Upsert(ctx context.Context, user *models.User, rideID string, rating int, comment string) (*models.Review, error)
	ListByRide(ctx context.Context, rideID string) ([]*models.Review, error)
}

type reviewService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewReviewService(stg storage.IStorage, log logger.ILogger) ReviewService {
	return &reviewService{stg: stg, log: log}
}

func (s *reviewService) Upsert(ctx context.Context, user *models.User, rideID string, rating int, comment string) (*models.Review, error) {
	if _, err := s.stg.Ride().GetByID(ctx, rideID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Ride not found")
		}
		return nil, apperr.Wrap(err, "loading ride")
	}
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("Rating must be between 1 and 5")
	}

	// any booking on the ride qualifies, regardless of its status
	eligible, err := s.stg.Booking().ExistsForRideAndUser(ctx, rideID, user.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "checking review eligibility")
	}
	if !eligible {
		return nil, apperr.Authorization("You must book this ride before reviewing it")
	}

	review, err := s.stg.Review().Upsert(ctx, &models.Review{
		RideID:  rideID,
		UserID:  user.ID,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	})
	if err != nil {
		return nil, apperr.Wrap(err, "saving review")
	}
	s.log.Info("review saved",
		logger.String("ride_id", rideID),
		logger.String("user_id", user.ID),
		logger.Int("rating", rating))
	return review, nil
}

func (s *reviewService) ListByRide(ctx context.Context, rideID string) ([]*models.Review, error) {
	reviews, err := s.stg.Review().ListByRide(ctx, rideID)
	if err != nil {
		return nil, apperr.Wrap(err, "listing reviews")
	}
	return reviews, nil
}
