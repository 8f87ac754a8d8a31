package models

import "time"

// User mirrors the slice of the hosted auth provider's user record we
// care about. The provider owns the account; we only hold a transient
// reference for gating decisions.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role,omitempty"`
	ConfirmedAt time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type SignUpRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}
