package models

import "time"

// Message is one entry in a booking's chat thread, ordered by creation time.
type Message struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	SenderName string `json:"senderName,omitempty"`
	SenderRole Role   `json:"senderRole,omitempty"`
}
