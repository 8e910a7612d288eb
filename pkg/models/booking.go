package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
	PaymentCash PaymentMethod = "Cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// BookingPassenger is one reserved seat. Exactly one entry per seat.
type BookingPassenger struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Age     int    `json:"age"`
	Luggage *int   `json:"luggage,omitempty"`
}

type Booking struct {
	ID            string             `json:"id"`
	RideID        string             `json:"rideId"`
	UserID        string             `json:"userId"`
	Type          RideType           `json:"type"`
	SeatsCount    int                `json:"seatsCount,omitempty"`
	Passengers    []BookingPassenger `json:"passengers,omitempty"`
	ParcelDetails *string            `json:"parcelDetails,omitempty"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
	Status        BookingStatus      `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`

	// joined fields on list reads
	Ride     *Ride  `json:"ride,omitempty"`
	UserName string `json:"userName,omitempty"`
	UserRole Role   `json:"userRole,omitempty"`
}
