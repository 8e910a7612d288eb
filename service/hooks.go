package service

import (
	"context"
	"encoding/json"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/pkg/mq"
)

// BookingEvent is the wire payload for booking lifecycle messages. It carries
// everything the notification worker needs so the worker never re-reads the
// booking row.
type BookingEvent struct {
	BookingID     string               `json:"bookingId"`
	RideID        string               `json:"rideId"`
	PassengerID   string               `json:"passengerId"`
	PassengerName string               `json:"passengerName"`
	DriverID      string               `json:"driverId"`
	Type          models.RideType      `json:"type"`
	SeatsCount    int                  `json:"seatsCount"`
	Status        models.BookingStatus `json:"status"`
	From          string               `json:"from"`
	To            string               `json:"to"`
}

// Events fires post-commit booking hooks. Implementations must not fail the
// calling request: delivery problems are logged and swallowed.
type Events interface {
	BookingCreated(ctx context.Context, booking *models.Booking, ride *models.Ride, passenger *models.User)
	BookingDecided(ctx context.Context, booking *models.Booking, ride *models.Ride)
}

type mqEvents struct {
	rabbit *mq.RabbitMQ
	log    logger.ILogger
}

func NewMQEvents(rabbit *mq.RabbitMQ, log logger.ILogger) Events {
	return &mqEvents{rabbit: rabbit, log: log}
}

func (e *mqEvents) publish(ctx context.Context, routingKey string, ev BookingEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		e.log.Error("marshalling booking event", logger.Error(err))
		return
	}
	if err := e.rabbit.Publish(ctx, mq.BookingExchange, routingKey, body); err != nil {
		e.log.Error("publishing booking event",
			logger.String("routing_key", routingKey),
			logger.String("booking_id", ev.BookingID),
			logger.Error(err))
	}
}

func (e *mqEvents) BookingCreated(ctx context.Context, booking *models.Booking, ride *models.Ride, passenger *models.User) {
	e.publish(ctx, mq.QueueBookingCreated, BookingEvent{
		BookingID:     booking.ID,
		RideID:        ride.ID,
		PassengerID:   booking.UserID,
		PassengerName: passenger.Name,
		DriverID:      ride.DriverID,
		Type:          booking.Type,
		SeatsCount:    booking.SeatsCount,
		Status:        booking.Status,
		From:          ride.From,
		To:            ride.To,
	})
}

func (e *mqEvents) BookingDecided(ctx context.Context, booking *models.Booking, ride *models.Ride) {
	e.publish(ctx, mq.QueueBookingDecision, BookingEvent{
		BookingID:   booking.ID,
		RideID:      ride.ID,
		PassengerID: booking.UserID,
		DriverID:    ride.DriverID,
		Type:        booking.Type,
		SeatsCount:  booking.SeatsCount,
		Status:      booking.Status,
		From:        ride.From,
		To:          ride.To,
	})
}

// NopEvents discards all hooks. Used in tests.
type NopEvents struct{}

func (NopEvents) BookingCreated(context.Context, *models.Booking, *models.Ride, *models.User) {}
func (NopEvents) BookingDecided(context.Context, *models.Booking, *models.Ride)               {}
