package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

// AuthToken is an opaque bearer token issued at registration or login.
// It is never mutated; it disappears by revocation or passive expiry.
type AuthToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}
