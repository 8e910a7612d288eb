package service

import (
	"context"
	"testing"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/models"
	"ridecarry/storage/memory"
)

func TestReviewRequiresABooking(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	svc := NewReviewService(stg, nopLog{})
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 2)

	if _, err := svc.Upsert(ctx, alice, ride.ID, 5, "great"); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("review without booking: got %v, want authorization error", err)
	}
}

func TestReviewUpsertIsIdempotentPerUser(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	svc := NewReviewService(stg, nopLog{})
	bookings := NewBookingService(stg, NopEvents{}, nopLog{})
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 2)

	if _, err := bookings.Create(ctx, alice, seatBookingInput(ride.ID, 1)); err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	first, err := svc.Upsert(ctx, alice, ride.ID, 3, "okay")
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	second, err := svc.Upsert(ctx, alice, ride.ID, 5, "actually great")
	if err != nil {
		t.Fatalf("second review: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("resubmission created a new review: %s vs %s", first.ID, second.ID)
	}

	list, err := svc.ListByRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("listing reviews: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("reviews = %d, want 1", len(list))
	}
	if list[0].Rating != 5 || list[0].Comment != "actually great" {
		t.Errorf("stored review = %+v, want updated values", list[0])
	}
}

func TestReviewRatingBounds(t *testing.T) {
	ctx := context.Background()
	stg := memory.New()
	svc := NewReviewService(stg, nopLog{})
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 2)

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Upsert(ctx, alice, ride.ID, rating, ""); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("rating %d: got %v, want validation error", rating, err)
		}
	}
}
