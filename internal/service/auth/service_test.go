package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-catalog/internal/config"
	"project-catalog/internal/domain"
	"project-catalog/internal/mocks"
	"project-catalog/internal/service/auth"
)

func TestService_TokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Minute}
	svc := auth.NewService(new(mocks.UserRepository), cfg)
	user := &domain.User{ID: uuid.New(), Email: "ana@example.com"}

	token, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	t.Run("Wrong secret", func(t *testing.T) {
		other := auth.NewService(new(mocks.UserRepository), &config.Config{JWTSecret: "other", JWTAccessExpiry: time.Minute})
		_, err := other.ValidateAccessToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := auth.NewService(new(mocks.UserRepository), &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: -time.Minute})
		stale, err := expired.IssueAccessToken(user)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(stale)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
