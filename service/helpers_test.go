package service

import (
	"context"
	"fmt"
	"testing"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
	"ridecarry/storage"
	"ridecarry/storage/memory"
)

type nopLog struct{}

func (nopLog) Debug(string, ...logger.Field)   {}
func (nopLog) Info(string, ...logger.Field)    {}
func (nopLog) Warning(string, ...logger.Field) {}
func (nopLog) Error(string, ...logger.Field)   {}

var userSeq int

func seedUser(t *testing.T, stg storage.IStorage, role models.Role) *models.User {
	t.Helper()
	userSeq++
	user, err := stg.User().Create(context.Background(), &models.User{
		Name:         fmt.Sprintf("user-%d", userSeq),
		Email:        fmt.Sprintf("user-%d@example.com", userSeq),
		PasswordHash: "x",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func seedSeatRide(t *testing.T, stg storage.IStorage, driver *models.User, seats int) *models.Ride {
	t.Helper()
	ride := &models.Ride{
		DriverID: driver.ID,
		From:     "Mumbai",
		To:       "Pune",
		RideType: models.RideTypeSeat,
		Seats:    seats,
		Price:    500,
	}
	ride.Normalize()
	ride, err := stg.Ride().Create(context.Background(), ride)
	if err != nil {
		t.Fatalf("seeding ride: %v", err)
	}
	return ride
}

func seedParcelRide(t *testing.T, stg storage.IStorage, driver *models.User) *models.Ride {
	t.Helper()
	weight := 10.0
	ride := &models.Ride{
		DriverID:       driver.ID,
		From:           "Delhi",
		To:             "Agra",
		RideType:       models.RideTypeParcel,
		Price:          300,
		ParcelWeightKg: &weight,
	}
	ride.Normalize()
	ride, err := stg.Ride().Create(context.Background(), ride)
	if err != nil {
		t.Fatalf("seeding parcel ride: %v", err)
	}
	return ride
}

func passengers(n int) []models.BookingPassenger {
	out := make([]models.BookingPassenger, n)
	for i := range out {
		out[i] = models.BookingPassenger{
			Name:  fmt.Sprintf("p%d", i+1),
			Phone: "9999999999",
			Age:   30,
		}
	}
	return out
}

func seatBookingInput(rideID string, n int) CreateBookingInput {
	return CreateBookingInput{
		RideID:        rideID,
		Type:          "seat",
		SeatsCount:    n,
		Passengers:    passengers(n),
		PaymentMethod: "Cash",
	}
}

func rideSeats(t *testing.T, stg storage.IStorage, rideID string) int {
	t.Helper()
	ride, err := stg.Ride().GetByID(context.Background(), rideID)
	if err != nil {
		t.Fatalf("loading ride: %v", err)
	}
	return ride.Seats
}

func newBookingEnv(t *testing.T) (storage.IStorage, BookingService) {
	t.Helper()
	stg := memory.New()
	return stg, NewBookingService(stg, NopEvents{}, nopLog{})
}
