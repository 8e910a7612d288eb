package service

import (
	"ridecarry/pkg/logger"
	"ridecarry/pkg/payment"
	"ridecarry/pkg/token"
	"ridecarry/storage"
)

type IServiceManager interface {
	Auth() AuthService
	User() UserService
	Ride() RideService
	Booking() BookingService
	Message() MessageService
	Notification() NotificationService
	Review() ReviewService
	Payment() PaymentService
}

type service struct {
	authService         AuthService
	userService         UserService
	rideService         RideService
	bookingService      BookingService
	messageService      MessageService
	notificationService NotificationService
	reviewService       ReviewService
	paymentService      PaymentService
}

func New(stg storage.IStorage, tokens *token.Maker, events Events, pay payment.IClient, log logger.ILogger) IServiceManager {
	return &service{
		authService:         NewAuthService(stg, tokens, log),
		userService:         NewUserService(stg, log),
		rideService:         NewRideService(stg, log),
		bookingService:      NewBookingService(stg, events, log),
		messageService:      NewMessageService(stg, log),
		notificationService: NewNotificationService(stg, log),
		reviewService:       NewReviewService(stg, log),
		paymentService:      NewPaymentService(stg, pay, log),
	}
}

func (s *service) Auth() AuthService                 { return s.authService }
func (s *service) User() UserService                 { return s.userService }
func (s *service) Ride() RideService                 { return s.rideService }
func (s *service) Booking() BookingService           { return s.bookingService }
func (s *service) Message() MessageService           { return s.messageService }
func (s *service) Notification() NotificationService { return s.notificationService }
func (s *service) Review() ReviewService             { return s.reviewService }
func (s *service) Payment() PaymentService           { return s.paymentService }
