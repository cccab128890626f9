package errors

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenNotFound      = errors.New("token not found")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrLikeNotFound       = errors.New("like not found")
	ErrAlreadyLiked       = errors.New("already liked")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError collects per-field problems from payload validation.
// It maps to a 422 response whose body enumerates the problems.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid payload: " + strings.Join(e.Problems, "; ")
}
