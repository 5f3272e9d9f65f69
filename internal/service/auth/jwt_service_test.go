package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culturahq/cultura-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-at-least-32-chars",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
		BcryptCost:                  10,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("secret too short", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.JWTSecret = "too-short"
		svc, err := NewJWTService(cfg)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestValidateToken_WrongType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	refreshToken, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)
	accessToken, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)

	userID := uuid.New()

	// Issue a token in the past, beyond the lifetime plus clock skew.
	issuedAt := time.Now().Add(-2 * time.Hour)
	impl.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)

	userID := uuid.New()

	issuedAt := time.Now().Add(-30 * 24 * time.Hour)
	impl.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestValidateToken_ClockSkewTolerated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	impl := svc.(*hmacJWTService)

	userID := uuid.New()

	// Token issued one minute in the future, inside the skew window.
	now := time.Now()
	impl.timeFunc = func() time.Time { return now.Add(time.Minute) }
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	impl.timeFunc = func() time.Time { return now }
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1aWQiOiJ4In0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateToken_WrongSigningKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svcA, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	cfgB := testAuthConfig()
	cfgB.JWTSecret = "a-different-secret-also-32-chars-xx"
	svcB, err := NewJWTService(cfgB)
	require.NoError(t, err)

	token, err := svcA.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svcB.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
