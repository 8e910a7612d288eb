package models

import "time"

type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

func (r Role) Valid() bool {
	switch r {
	case RolePassenger, RoleDriver:
		return true
	}
	return false
}

type DocStatus string

const (
	DocStatusPending  DocStatus = "pending"
	DocStatusVerified DocStatus = "verified"
	DocStatusRejected DocStatus = "rejected"
)

// DriverDocuments is the verification sub-record embedded on driver accounts.
type DriverDocuments struct {
	AadhaarPath *string   `json:"aadhaarPath"`
	LicensePath *string   `json:"licensePath"`
	Status      DocStatus `json:"status"`
}

type User struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	Provider     *string          `json:"provider,omitempty"`
	ProviderID   *string          `json:"-"`
	Phone        *string          `json:"phone,omitempty"`
	AvatarPath   *string          `json:"avatarPath,omitempty"`
	Role         Role             `json:"role"`
	Documents    *DriverDocuments `json:"documents,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
