package service

import (
	"context"
	"testing"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/models"
)

func TestSeatBookingReservesAndRestoresSeats(t *testing.T) {
	ctx := context.Background()
	stg, svc := newBookingEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	bob := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 2)

	booking, err := svc.Create(ctx, alice, seatBookingInput(ride.ID, 2))
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	if booking.Status != models.BookingPending {
		t.Errorf("status = %q, want pending", booking.Status)
	}
	if got := rideSeats(t, stg, ride.ID); got != 0 {
		t.Errorf("seats after booking = %d, want 0", got)
	}

	// no seats left for bob
	if _, err := svc.Create(ctx, bob, seatBookingInput(ride.ID, 1)); err == nil {
		t.Fatal("expected error when ride is full")
	} else if apperr.UserMessage(err) != "Not enough seats" {
		t.Errorf("message = %q, want %q", apperr.UserMessage(err), "Not enough seats")
	}

	// rejection frees the seats exactly once
	rejected, err := svc.Reject(ctx, driver, booking.ID)
	if err != nil {
		t.Fatalf("rejecting booking: %v", err)
	}
	if rejected.Status != models.BookingRejected {
		t.Errorf("status = %q, want rejected", rejected.Status)
	}
	if got := rideSeats(t, stg, ride.ID); got != 2 {
		t.Errorf("seats after reject = %d, want 2", got)
	}

	if _, err := svc.Create(ctx, bob, seatBookingInput(ride.ID, 1)); err != nil {
		t.Fatalf("booking after seats freed: %v", err)
	}
	if got := rideSeats(t, stg, ride.ID); got != 1 {
		t.Errorf("seats = %d, want 1", got)
	}
}

func TestCancelConfirmedBookingRestoresSeatsOnce(t *testing.T) {
	ctx := context.Background()
	stg, svc := newBookingEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 3)

	booking, err := svc.Create(ctx, alice, seatBookingInput(ride.ID, 2))
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	if _, err := svc.Approve(ctx, driver, booking.ID); err != nil {
		t.Fatalf("approving booking: %v", err)
	}
	if got := rideSeats(t, stg, ride.ID); got != 1 {
		t.Fatalf("seats after approve = %d, want 1", got)
	}

	cancelled, err := svc.Cancel(ctx, alice, booking.ID)
	if err != nil {
		t.Fatalf("cancelling booking: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if got := rideSeats(t, stg, ride.ID); got != 3 {
		t.Errorf("seats after cancel = %d, want 3", got)
	}

	// second cancel must not restore again
	if _, err := svc.Cancel(ctx, alice, booking.ID); err == nil {
		t.Fatal("expected error on double cancel")
	}
	if got := rideSeats(t, stg, ride.ID); got != 3 {
		t.Errorf("seats after double cancel = %d, want 3", got)
	}
}

func TestDecisionTransitionsOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	stg, svc := newBookingEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 4)

	booking, err := svc.Create(ctx, alice, seatBookingInput(ride.ID, 1))
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}
	if _, err := svc.Approve(ctx, driver, booking.ID); err != nil {
		t.Fatalf("approving booking: %v", err)
	}

	if _, err := svc.Approve(ctx, driver, booking.ID); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("double approve: got %v, want validation error", err)
	}
	if _, err := svc.Reject(ctx, driver, booking.ID); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("reject after approve: got %v, want validation error", err)
	}
	// a rejected seat restore must not have happened
	if got := rideSeats(t, stg, ride.ID); got != 3 {
		t.Errorf("seats = %d, want 3", got)
	}
}

func TestDecisionsRequireRideDriver(t *testing.T) {
	ctx := context.Background()
	stg, svc := newBookingEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	otherDriver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 2)

	booking, err := svc.Create(ctx, alice, seatBookingInput(ride.ID, 1))
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	if _, err := svc.Approve(ctx, otherDriver, booking.ID); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("approve by wrong driver: got %v, want authorization error", err)
	}
	if _, err := svc.Cancel(ctx, otherDriver, booking.ID); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("cancel by non-owner: got %v, want authorization error", err)
	}
}

func TestBookingTypeMustMatchRide(t *testing.T) {
	ctx := context.Background()
	stg, svc := newBookingEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	seatRide := seedSeatRide(t, stg, driver, 2)
	parcelRide := seedParcelRide(t, stg, driver)

	in := CreateBookingInput{RideID: seatRide.ID, Type: "parcel", PaymentMethod: "UPI"}
	if _, err := svc.Create(ctx, alice, in); apperr.UserMessage(err) != "This post is passengers-only" {
		t.Errorf("parcel on seat ride: got %v", err)
	}

	if _, err := svc.Create(ctx, alice, seatBookingInput(parcelRide.ID, 1)); apperr.UserMessage(err) != "This post is parcel-only" {
		t.Errorf("seat on parcel ride: got %v", err)
	}

	// parcel booking leaves the seat counter alone
	details := "one box, 5kg"
	parcelIn := CreateBookingInput{RideID: parcelRide.ID, Type: "parcel", ParcelDetails: &details, PaymentMethod: "UPI"}
	booking, err := svc.Create(ctx, alice, parcelIn)
	if err != nil {
		t.Fatalf("parcel booking: %v", err)
	}
	if booking.SeatsCount != 0 {
		t.Errorf("parcel booking seatsCount = %d, want 0", booking.SeatsCount)
	}
	if got := rideSeats(t, stg, parcelRide.ID); got != 0 {
		t.Errorf("parcel ride seats = %d, want 0", got)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	stg, svc := newBookingEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 3)

	cases := []struct {
		name string
		in   CreateBookingInput
		want string
	}{
		{
			name: "missing rideId",
			in:   CreateBookingInput{PaymentMethod: "Cash"},
			want: "rideId is required",
		},
		{
			name: "zero seatsCount",
			in:   CreateBookingInput{RideID: ride.ID, Type: "seat", PaymentMethod: "Cash"},
			want: "Invalid seatsCount",
		},
		{
			name: "passenger count mismatch",
			in: CreateBookingInput{
				RideID: ride.ID, Type: "seat", SeatsCount: 2,
				Passengers: passengers(1), PaymentMethod: "Cash",
			},
			want: "Passenger details must match seatsCount",
		},
		{
			name: "blank passenger name",
			in: CreateBookingInput{
				RideID: ride.ID, Type: "seat", SeatsCount: 1,
				Passengers:    []models.BookingPassenger{{Name: " ", Phone: "123", Age: 20}},
				PaymentMethod: "Cash",
			},
			want: "Invalid passenger details",
		},
		{
			name: "bad payment method",
			in: CreateBookingInput{
				RideID: ride.ID, Type: "seat", SeatsCount: 1,
				Passengers: passengers(1), PaymentMethod: "Barter",
			},
			want: "Invalid payment method",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, alice, tc.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperr.UserMessage(err); got != tc.want {
				t.Errorf("message = %q, want %q", got, tc.want)
			}
		})
	}

	// validation failures never touch the seat counter
	if got := rideSeats(t, stg, ride.ID); got != 3 {
		t.Errorf("seats = %d, want 3", got)
	}
}

func TestListMineScopedByRole(t *testing.T) {
	ctx := context.Background()
	stg, svc := newBookingEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	bob := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 4)

	if _, err := svc.Create(ctx, alice, seatBookingInput(ride.ID, 1)); err != nil {
		t.Fatalf("alice booking: %v", err)
	}
	if _, err := svc.Create(ctx, bob, seatBookingInput(ride.ID, 1)); err != nil {
		t.Fatalf("bob booking: %v", err)
	}

	mine, err := svc.ListMine(ctx, alice)
	if err != nil {
		t.Fatalf("listing alice bookings: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("alice bookings = %d, want 1", len(mine))
	}

	incoming, err := svc.ListMine(ctx, driver)
	if err != nil {
		t.Fatalf("listing driver bookings: %v", err)
	}
	if len(incoming) != 2 {
		t.Errorf("driver bookings = %d, want 2", len(incoming))
	}
}
