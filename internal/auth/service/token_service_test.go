package service_test

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchjournal/backend/internal/auth/domain"
	"github.com/watchjournal/backend/internal/auth/service"
	"github.com/watchjournal/backend/internal/mocks"
)

func TestTokenService_Issue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenRepo := mocks.NewMockTokenRepository(ctrl)
	tokens := service.NewTokenService(tokenRepo, 1440)
	ctx := context.Background()

	var stored []*domain.AuthToken
	tokenRepo.EXPECT().Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *domain.AuthToken) error {
			stored = append(stored, tok)
			return nil
		}).Times(2)

	before := time.Now()
	first, err := tokens.Issue(ctx, 7)
	require.NoError(t, err)
	second, err := tokens.Issue(ctx, 7)
	require.NoError(t, err)
	after := time.Now()

	// 256 bits of entropy, hex encoded.
	assert.Len(t, first, 64)
	_, err = hex.DecodeString(first)
	assert.NoError(t, err)

	// Two tokens for the same user are distinct and independently stored.
	assert.NotEqual(t, first, second)
	require.Len(t, stored, 2)
	assert.Equal(t, first, stored[0].Token)
	assert.Equal(t, int64(7), stored[0].UserID)

	ttl := 1440 * time.Minute
	assert.False(t, stored[0].ExpiresAt.Before(before.Add(ttl)))
	assert.False(t, stored[0].ExpiresAt.After(after.Add(ttl)))
}

func TestTokenService_ResolveUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenRepo := mocks.NewMockTokenRepository(ctrl)
	tokens := service.NewTokenService(tokenRepo, 1440)
	ctx := context.Background()

	t.Run("empty token resolves to absent without a store lookup", func(t *testing.T) {
		userID, err := tokens.ResolveUserID(ctx, "")
		require.NoError(t, err)
		assert.Zero(t, userID)
	})

	t.Run("known token resolves to its user", func(t *testing.T) {
		tokenRepo.EXPECT().FindUserID(gomock.Any(), "tok", gomock.Any()).Return(int64(42), nil)

		userID, err := tokens.ResolveUserID(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("unknown, revoked, and expired tokens are indistinguishable", func(t *testing.T) {
		tokenRepo.EXPECT().FindUserID(gomock.Any(), "gone", gomock.Any()).Return(int64(0), nil)

		userID, err := tokens.ResolveUserID(ctx, "gone")
		require.NoError(t, err)
		assert.Zero(t, userID)
	})
}

func TestTokenService_Revoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenRepo := mocks.NewMockTokenRepository(ctrl)
	tokens := service.NewTokenService(tokenRepo, 1440)
	ctx := context.Background()

	// Revoking twice is not an error.
	tokenRepo.EXPECT().Delete(gomock.Any(), "tok").Return(nil).Times(2)

	require.NoError(t, tokens.Revoke(ctx, "tok"))
	require.NoError(t, tokens.Revoke(ctx, "tok"))
}
