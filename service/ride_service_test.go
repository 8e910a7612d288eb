package service

import (
	"context"
	"testing"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/models"
	"ridecarry/storage/memory"
)

func newRideEnv(t *testing.T) (*memory.Store, RideService) {
	t.Helper()
	stg := memory.New()
	return stg, NewRideService(stg, nopLog{})
}

func TestCreateRideNormalizesParcel(t *testing.T) {
	ctx := context.Background()
	stg, svc := newRideEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)

	weight := 12.5
	ride, err := svc.Create(ctx, driver, CreateRideInput{
		From:           "Delhi",
		To:             "Jaipur",
		Date:           "2026-09-15",
		RideType:       "parcel",
		Seats:          4, // must be forced to zero
		Price:          250,
		ParcelWeightKg: &weight,
	})
	if err != nil {
		t.Fatalf("creating parcel ride: %v", err)
	}
	if ride.Seats != 0 {
		t.Errorf("parcel ride seats = %d, want 0", ride.Seats)
	}
	if !ride.ParcelAllowed {
		t.Error("parcel ride must have parcelAllowed set")
	}
}

func TestCreateRideNormalizesSeat(t *testing.T) {
	ctx := context.Background()
	stg, svc := newRideEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)

	weight := 5.0
	ride, err := svc.Create(ctx, driver, CreateRideInput{
		From:           "Mumbai",
		To:             "Pune",
		Date:           "2026-09-15",
		RideType:       "seat",
		Seats:          3,
		Price:          500,
		ParcelWeightKg: &weight, // must be dropped
	})
	if err != nil {
		t.Fatalf("creating seat ride: %v", err)
	}
	if ride.ParcelAllowed {
		t.Error("seat ride must not allow parcels")
	}
	if ride.ParcelWeightKg != nil {
		t.Error("seat ride must not keep a parcel weight")
	}
}

func TestCreateRideValidation(t *testing.T) {
	ctx := context.Background()
	stg, svc := newRideEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)

	bad := "24:00"
	good := "08:30"
	cases := []struct {
		name string
		in   CreateRideInput
		want string
	}{
		{"missing fields", CreateRideInput{From: "A"}, "Missing required fields"},
		{"bad date", CreateRideInput{From: "A", To: "B", Date: "soon"}, "Invalid date"},
		{"bad type", CreateRideInput{From: "A", To: "B", Date: "2026-09-15", RideType: "bus"}, "Invalid rideType"},
		{"no seats", CreateRideInput{From: "A", To: "B", Date: "2026-09-15", RideType: "seat"}, "Invalid seats"},
		{"negative price", CreateRideInput{From: "A", To: "B", Date: "2026-09-15", RideType: "seat", Seats: 2, Price: -1}, "Invalid price"},
		{"bad pickup", CreateRideInput{From: "A", To: "B", Date: "2026-09-15", RideType: "seat", Seats: 2, PickupTime: &bad}, "Invalid pickupTime"},
		{"bad drop", CreateRideInput{From: "A", To: "B", Date: "2026-09-15", RideType: "seat", Seats: 2, PickupTime: &good, DropTime: &bad}, "Invalid dropTime"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, driver, tc.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperr.UserMessage(err); got != tc.want {
				t.Errorf("message = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUpdateRideOwnershipReportedAsNotFound(t *testing.T) {
	ctx := context.Background()
	stg, svc := newRideEnv(t)
	owner := seedUser(t, stg, models.RoleDriver)
	intruder := seedUser(t, stg, models.RoleDriver)
	ride := seedSeatRide(t, stg, owner, 3)

	price := 750.0
	if _, err := svc.Update(ctx, intruder, ride.ID, UpdateRideInput{Price: &price}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("update by non-owner: got %v, want not found", err)
	}

	updated, err := svc.Update(ctx, owner, ride.ID, UpdateRideInput{Price: &price})
	if err != nil {
		t.Fatalf("update by owner: %v", err)
	}
	if updated.Price != 750 {
		t.Errorf("price = %v, want 750", updated.Price)
	}
}

func TestUpdateSeatRideRejectsZeroSeats(t *testing.T) {
	ctx := context.Background()
	stg, svc := newRideEnv(t)
	owner := seedUser(t, stg, models.RoleDriver)
	ride := seedSeatRide(t, stg, owner, 3)

	zero := 0
	if _, err := svc.Update(ctx, owner, ride.ID, UpdateRideInput{Seats: &zero}); apperr.UserMessage(err) != "Invalid seats" {
		t.Errorf("seats=0 patch: got %v, want validation error", err)
	}

	one := 1
	updated, err := svc.Update(ctx, owner, ride.ID, UpdateRideInput{Seats: &one})
	if err != nil {
		t.Fatalf("seats=1 patch: %v", err)
	}
	if updated.Seats != 1 {
		t.Errorf("seats = %d, want 1", updated.Seats)
	}
}

func TestSearchRidesFilters(t *testing.T) {
	ctx := context.Background()
	stg, svc := newRideEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)

	mk := func(from, to, date string) {
		t.Helper()
		if _, err := svc.Create(ctx, driver, CreateRideInput{
			From: from, To: to, Date: date, RideType: "seat", Seats: 2, Price: 100,
		}); err != nil {
			t.Fatalf("seeding ride: %v", err)
		}
	}
	mk("Mumbai", "Pune", "2026-09-15")
	mk("Mumbai", "Nashik", "2026-09-16")
	mk("Delhi", "Agra", "2026-09-15")

	got, err := svc.Search(ctx, "mum", "", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("substring search matched %d rides, want 2", len(got))
	}

	got, err = svc.Search(ctx, "", "", "2026-09-15")
	if err != nil {
		t.Fatalf("date search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("date search matched %d rides, want 2", len(got))
	}

	if _, err := svc.Search(ctx, "", "", "not-a-date"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad date: got %v, want validation error", err)
	}
}

func TestDeleteRideRemovesItsBookings(t *testing.T) {
	ctx := context.Background()
	stg, svc := newRideEnv(t)
	driver := seedUser(t, stg, models.RoleDriver)
	alice := seedUser(t, stg, models.RolePassenger)
	ride := seedSeatRide(t, stg, driver, 2)

	bookings := NewBookingService(stg, NopEvents{}, nopLog{})
	booking, err := bookings.Create(ctx, alice, seatBookingInput(ride.ID, 1))
	if err != nil {
		t.Fatalf("creating booking: %v", err)
	}

	if err := svc.Delete(ctx, driver, ride.ID); err != nil {
		t.Fatalf("deleting ride: %v", err)
	}
	if _, err := svc.GetByID(ctx, ride.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("ride still readable after delete: %v", err)
	}
	if _, err := bookings.GetByID(ctx, booking.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("booking survived ride delete: %v", err)
	}
}
