package dto

import "time"

type UserOutput struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse is the body returned by register and login.
type AuthResponse struct {
	Token string     `json:"token"`
	User  UserOutput `json:"user"`
}
