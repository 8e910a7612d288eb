package service

import (
	"context"
	"errors"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
)

const notificationPageSize = 50

type NotificationService interface {
	List(ctx context.Context, userID string) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewNotificationService(stg storage.IStorage, log logger.ILogger) NotificationService {
	return &notificationService{stg: stg, log: log}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]*models.Notification, int, error) {
	items, err := s.stg.Notification().ListByUser(ctx, userID, notificationPageSize)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "listing notifications")
	}
	unread, err := s.stg.Notification().CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "counting unread notifications")
	}
	return items, unread, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.stg.Notification().MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("Notification not found")
		}
		return apperr.Wrap(err, "marking notification read")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.stg.Notification().MarkAllRead(ctx, userID); err != nil {
		return apperr.Wrap(err, "marking notifications read")
	}
	return nil
}
