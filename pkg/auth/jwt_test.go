package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("alice")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("bob")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("alice")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("alice")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	other := NewJWTManager("other-secret", "other-refresh", time.Hour, 24*time.Hour)

	token, err := other.GenerateToken("alice")
	require.NoError(t, err)

	_, err = newTestManager().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateToken("alice")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := newTestManager().ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
