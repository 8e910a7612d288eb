package models

import "time"

// Review is unique per (ride, user); writes are upserts.
type Review struct {
	ID        string    `json:"id"`
	RideID    string    `json:"rideId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ReviewerName   string  `json:"reviewerName,omitempty"`
	ReviewerAvatar *string `json:"reviewerAvatar,omitempty"`
	ReviewerRole   Role    `json:"reviewerRole,omitempty"`
}
