package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"uid"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	PasswordHash string    `json:"-"`
	UserRole     string    `json:"user_role"`
	Verified     bool      `json:"verified"`
	Banned       bool      `json:"banned"`
	OTP          string    `json:"-"`

	// Intervenant profile fields, zero-valued for clients.
	Metier string  `json:"metier,omitempty"`
	City   string  `json:"city,omitempty"`
	Rating float64 `json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateUserRequest struct {
	Username    *string `json:"username" validate:"omitempty,lte=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,lte=20"`
	City        *string `json:"city" validate:"omitempty,lte=100"`
	Metier      *string `json:"metier" validate:"omitempty,lte=50"`
}

// UserFilter drives the admin user listing.
type UserFilter struct {
	Role   string
	Banned *bool
	Page   int
	Limit  int
}
