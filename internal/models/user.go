package models

import "time"

// User roles.
const (
	RoleOwner  = "owner"
	RoleRenter = "renter"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	UpiID        string    `json:"upi_id,omitempty"` // owner's VPA for UPI collection
	FCMToken     string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token"`
}

type UpdateUpiRequest struct {
	UpiID string `json:"upi_id"`
}
