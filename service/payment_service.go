package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/pkg/payment"
	"ridecarry/storage"
)

type CreateOrderInput struct {
	RideID     string
	Type       string
	SeatsCount int
}

type OrderResult struct {
	KeyID    string `json:"keyId"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentService interface {
	CreateOrder(ctx context.Context, user *models.User, in CreateOrderInput) (*OrderResult, error)
}

type paymentService struct {
	stg    storage.IStorage
	client payment.IClient
	log    logger.ILogger
}

func NewPaymentService(stg storage.IStorage, client payment.IClient, log logger.ILogger) PaymentService {
	return &paymentService{stg: stg, client: client, log: log}
}

// tail keeps the last n characters of an id for compact receipt suffixes.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func (s *paymentService) CreateOrder(ctx context.Context, user *models.User, in CreateOrderInput) (*OrderResult, error) {
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

	amount := ride.Price
	if requested == models.RideTypeSeat {
		if in.SeatsCount < 1 {
			return nil, apperr.Validation("Invalid seatsCount")
		}
		amount = ride.Price * float64(in.SeatsCount)
	}
	paise := int64(math.Round(amount * 100))
	if paise < 0 {
		return nil, apperr.Validation("Invalid amount")
	}

	// Razorpay caps receipts at 40 characters
	receipt := fmt.Sprintf("bk_%s_%s%s",
		strconv.FormatInt(time.Now().Unix(), 36),
		tail(user.ID, 6), tail(ride.ID, 6))
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}

	order, err := s.client.CreateOrder(ctx, payment.OrderRequest{
		Amount:   paise,
		Currency: "INR",
		Receipt:  receipt,
		Notes: map[string]string{
			"rideId": ride.ID,
			"userId": user.ID,
			"type":   string(requested),
		},
	})
	if err != nil {
		return nil, apperr.Wrap(err, "creating payment order")
	}
	s.log.Info("payment order created",
		logger.String("order_id", order.ID),
		logger.String("ride_id", ride.ID),
		logger.Int64("amount", order.Amount))

	return &OrderResult{
		KeyID:    s.client.KeyID(),
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}
