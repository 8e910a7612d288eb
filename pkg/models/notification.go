package models

import "time"

const NotificationTypeBooking = "booking"

type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	BookingID *string    `json:"bookingId,omitempty"`
	RideID    *string    `json:"rideId,omitempty"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
}
