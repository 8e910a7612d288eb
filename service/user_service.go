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

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, name, phone *string) (*models.User, error)
}

type userService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewUserService(stg storage.IStorage, log logger.ILogger) UserService {
	return &userService{stg: stg, log: log}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.stg.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Wrap(err, "loading user")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, name, phone *string) (*models.User, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperr.Validation("Name cannot be empty")
		}
		name = &trimmed
	}
	if phone != nil {
		trimmed := strings.TrimSpace(*phone)
		phone = &trimmed
	}
	user, err := s.stg.User().UpdateProfile(ctx, id, name, phone)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Wrap(err, "updating profile")
	}
	return user, nil
}
