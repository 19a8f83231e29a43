package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "pos-api"},
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	token, err := mgr.GenerateAccessToken(42, "cashier@example.com", true)
	require.NoError(t, err)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "cashier@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestTokenTypeMismatch(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	refresh, err := mgr.GenerateRefreshToken(42, "cashier@example.com")
	require.NoError(t, err)

	_, err = mgr.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = mgr.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	token, err := mgr.GenerateAccessToken(42, "cashier@example.com", false)
	require.NoError(t, err)

	other := NewJWTManager(&config.Config{
		JWT: config.JWTConfig{Secret: "different-secret", AccessTokenExpiry: time.Hour},
	})
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
}

func TestPasswordManager(t *testing.T) {
	mgr := NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: 4},
	})

	hash, err := mgr.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, mgr.VerifyPassword("password123", hash))
	assert.Error(t, mgr.VerifyPassword("wrong", hash))

	assert.Error(t, mgr.ValidatePassword("short"))
	assert.NoError(t, mgr.ValidatePassword("password123"))
}
