package service

import (
	"context"
	"strings"
	"testing"

	"ridecarry/pkg/models"
	"ridecarry/storage/memory"
)

type recordingPusher struct {
	pushes map[string]int
}

func (p *recordingPusher) Push(userID string, _ interface{}) {
	if p.pushes == nil {
		p.pushes = map[string]int{}
	}
	p.pushes[userID]++
}

func TestWorkerBookingCreatedNotifiesDriverAndSeedsChat(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	pusher := &recordingPusher{}
	worker := NewNotificationWorker(stg, pusher, nopLog{})

	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 3)

	bookings := NewBookingService(stg, NopEvents{}, nopLog{})
	booking, err := bookings.Create(ctx, alice, seatBookingInput(ride.ID, 2))
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	ev := BookingEvent{
		BookingID:     booking.ID,
		RideID:        ride.ID,
		PassengerID:   alice.ID,
		PassengerName: alice.Name,
		DriverID:      driver.ID,
		Type:          models.RideTypeSeat,
		SeatsCount:    2,
		Status:        models.BookingPending,
		From:          ride.From,
		To:            ride.To,
	}
	if err := worker.HandleBookingCreated(ctx, ev); err != nil {
		t.Fatalf("handling booking.created: %v", err)
	}

	items, err := stg.Notification().ListByUser(ctx, driver.ID, 10)
	if err != nil {
		t.Fatalf("listing notifications: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("driver notifications = %d, want 1", len(items))
	}
	if items[0].Title != "New booking request" {
		t.Errorf("title = %q", items[0].Title)
	}
	if items[0].BookingID == nil || *items[0].BookingID != booking.ID {
		t.Error("notification not linked to the booking")
	}

	msgs, err := stg.Message().ListByBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("listing messages: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("seeded messages = %d, want 1", len(msgs))
	}
	if msgs[0].SenderID != alice.ID || !strings.Contains(msgs[0].Text, "2 seat(s)") {
		t.Errorf("seeded message = %+v", msgs[0])
	}

	if pusher.pushes[driver.ID] != 1 {
		t.Errorf("driver pushes = %d, want 1", pusher.pushes[driver.ID])
	}
}

func TestWorkerDecisionRouting(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	pusher := &recordingPusher{}
	worker := NewNotificationWorker(stg, pusher, nopLog{})

	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 2)

	base := BookingEvent{
		BookingID:   "bk-1",
		RideID:      ride.ID,
		PassengerID: alice.ID,
		DriverID:    driver.ID,
		Type:        models.RideTypeSeat,
		From:        ride.From,
		To:          ride.To,
	}

	cases := []struct {
		status    models.BookingStatus
		recipient string
		title     string
	}{
		{models.BookingConfirmed, alice.ID, "Booking confirmed"},
		{models.BookingRejected, alice.ID, "Booking rejected"},
		{models.BookingCancelled, driver.ID, "Booking cancelled"},
	}
	for _, tc := range cases {
		ev := base
		ev.Status = tc.status
		if err := worker.HandleBookingDecided(ctx, ev); err != nil {
			t.Fatalf("handling %s: %v", tc.status, err)
		}
		items, err := stg.Notification().ListByUser(ctx, tc.recipient, 10)
		if err != nil {
			t.Fatalf("listing notifications: %v", err)
		}
		found := false
		for _, n := range items {
			if n.Title == tc.title {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: recipient %s missing notification %q", tc.status, tc.recipient, tc.title)
		}
	}
}
