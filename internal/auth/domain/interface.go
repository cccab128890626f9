package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/watchjournal/backend/internal/auth/domain UserRepository,TokenRepository

import (
	"context"
	"time"
)

type UserRepository interface {
	// Create inserts a new user and returns its assigned id.
	Create(ctx context.Context, user *User) (int64, error)
	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, id int64) (*User, error)
}

type TokenRepository interface {
	Store(ctx context.Context, token *AuthToken) error
	// FindUserID returns the owning user id for a token whose expiry is
	// strictly after now, or 0 when no such token exists.
	FindUserID(ctx context.Context, token string, now time.Time) (int64, error)
	// Delete removes a token; deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}
