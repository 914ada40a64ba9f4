package auth

import (
	"github.com/happyfood/happyfood-backend/internal/users"
)

// RegisterRequest carries the fields accepted by the register endpoint.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=150"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required"`
}

// LoginRequest carries the credentials accepted by the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token plus the authenticated profile.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// RegisterResponse returns the created profile.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}
