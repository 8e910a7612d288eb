package service

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/pkg/mq"
	"ridecarry/storage"
)

// Pusher delivers a payload to every live connection of one user.
type Pusher interface {
	Push(userID string, v interface{})
}

// NotificationWorker consumes booking events and fans them out: a stored
// notification for the counterparty, a seeded chat message on creation, and a
// realtime push to open sockets.
type NotificationWorker struct {
	stg storage.IStorage
	hub Pusher
	log logger.ILogger
}

func NewNotificationWorker(stg storage.IStorage, hub Pusher, log logger.ILogger) *NotificationWorker {
	return &NotificationWorker{stg: stg, hub: hub, log: log}
}

// Start registers the queue consumers. Handlers run until ctx is cancelled.
func (w *NotificationWorker) Start(ctx context.Context, rabbit *mq.RabbitMQ) error {
	err := rabbit.Consume(ctx, mq.QueueBookingCreated, "notification-worker", func(d amqp.Delivery) error {
		var ev BookingEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			return fmt.Errorf("decoding booking.created event: %w", err)
		}
		return w.HandleBookingCreated(ctx, ev)
	})
	if err != nil {
		return err
	}
	return rabbit.Consume(ctx, mq.QueueBookingDecision, "notification-worker", func(d amqp.Delivery) error {
		var ev BookingEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			return fmt.Errorf("decoding booking.decision event: %w", err)
		}
		return w.HandleBookingDecided(ctx, ev)
	})
}

func (w *NotificationWorker) notify(ctx context.Context, ev BookingEvent, userID, title, message string) error {
	n, err := w.stg.Notification().Create(ctx, &models.Notification{
		UserID:    userID,
		Type:      models.NotificationTypeBooking,
		Title:     title,
		Message:   message,
		BookingID: &ev.BookingID,
		RideID:    &ev.RideID,
	})
	if err != nil {
		return fmt.Errorf("storing notification: %w", err)
	}
	w.hub.Push(userID, n)
	return nil
}

func (w *NotificationWorker) HandleBookingCreated(ctx context.Context, ev BookingEvent) error {
	var message string
	if ev.Type == models.RideTypeParcel {
		message = fmt.Sprintf("%s requested a parcel slot on %s to %s", ev.PassengerName, ev.From, ev.To)
	} else {
		message = fmt.Sprintf("%s requested %d seat(s) on %s to %s", ev.PassengerName, ev.SeatsCount, ev.From, ev.To)
	}
	if err := w.notify(ctx, ev, ev.DriverID, "New booking request", message); err != nil {
		return err
	}

	// seed the chat thread so the driver sees an opening message
	text := "Hi! I requested a parcel slot on your ride."
	if ev.Type == models.RideTypeSeat {
		text = fmt.Sprintf("Hi! I booked %d seat(s) on your ride.", ev.SeatsCount)
	}
	if _, err := w.stg.Message().Create(ctx, &models.Message{
		BookingID: ev.BookingID,
		SenderID:  ev.PassengerID,
		Text:      text,
	}); err != nil {
		return fmt.Errorf("seeding chat message: %w", err)
	}
	return nil
}

func (w *NotificationWorker) HandleBookingDecided(ctx context.Context, ev BookingEvent) error {
	switch ev.Status {
	case models.BookingConfirmed:
		return w.notify(ctx, ev, ev.PassengerID, "Booking confirmed",
			fmt.Sprintf("Your booking on %s to %s was confirmed", ev.From, ev.To))
	case models.BookingRejected:
		return w.notify(ctx, ev, ev.PassengerID, "Booking rejected",
			fmt.Sprintf("Your booking on %s to %s was rejected", ev.From, ev.To))
	case models.BookingCancelled:
		return w.notify(ctx, ev, ev.DriverID, "Booking cancelled",
			fmt.Sprintf("A booking on %s to %s was cancelled by the passenger", ev.From, ev.To))
	default:
		w.log.Warning("unhandled booking decision status", logger.String("status", string(ev.Status)))
		return nil
	}
}
