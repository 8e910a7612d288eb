package models

import "time"

type RideType string

const (
	RideTypeSeat   RideType = "seat"
	RideTypeParcel RideType = "parcel"
)

func (t RideType) Valid() bool {
	switch t {
	case RideTypeSeat, RideTypeParcel:
		return true
	}
	return false
}

// Ride is a driver's posted trip. A parcel ride always has Seats=0 and
// ParcelAllowed=true; a seat ride always has ParcelAllowed=false.
type Ride struct {
	ID             string    `json:"id"`
	DriverID       string    `json:"driverId"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Date           time.Time `json:"date"`
	RideType       RideType  `json:"rideType"`
	Seats          int       `json:"seats"`
	Price          float64   `json:"price"`
	ParcelAllowed  bool      `json:"parcelAllowed"`
	ParcelWeightKg *float64  `json:"parcelWeightKg,omitempty"`
	PickupTime     *string   `json:"pickupTime,omitempty"`
	DropTime       *string   `json:"dropTime,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// joined driver fields, present on search/detail reads
	DriverName string `json:"driverName,omitempty"`
	DriverRole Role   `json:"driverRole,omitempty"`
}

// Normalize re-enforces the type/seats/parcelAllowed invariant. Applied
// unconditionally after every create and update.
func (r *Ride) Normalize() {
	switch r.RideType {
	case RideTypeParcel:
		r.Seats = 0
		r.ParcelAllowed = true
	default:
		r.ParcelAllowed = false
		r.ParcelWeightKg = nil
	}
}
