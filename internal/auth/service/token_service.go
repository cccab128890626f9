package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/watchjournal/backend/internal/auth/domain"
)

// tokenBytes is the entropy of an issued token; hex encoding doubles the
// string length, so tokens are 64-character strings.
const tokenBytes = 32

// TokenService issues, resolves, and revokes opaque bearer tokens. Every call
// goes to the store; there is no in-memory state.
type TokenService struct {
	repo domain.TokenRepository
	ttl  time.Duration
}

func NewTokenService(repo domain.TokenRepository, ttlMinutes int) *TokenService {
	return &TokenService{
		repo: repo,
		ttl:  time.Duration(ttlMinutes) * time.Minute,
	}
}

// Issue generates a random token for the user, persists it with an absolute
// expiry of now+TTL, and returns the token string.
func (s *TokenService) Issue(ctx context.Context, userID int64) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	err := s.repo.Store(ctx, &domain.AuthToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// ResolveUserID returns the user id the token belongs to, or 0 when the token
// is unknown, revoked, or expired. The three cases are indistinguishable on
// purpose.
func (s *TokenService) ResolveUserID(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	return s.repo.FindUserID(ctx, token, time.Now())
}

// Revoke deletes the token. Revoking an absent token is a no-op.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	return s.repo.Delete(ctx, token)
}
