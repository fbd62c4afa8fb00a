package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "storyverse", 0)
	assert.Equal(t, 7*24*time.Hour, m.TTL())

	token, err := m.GenerateToken("u-1", "ann@example.com")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, "storyverse", claims.Issuer)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", "storyverse", time.Hour)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken("u-1", "ann@example.com")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", "storyverse", 0).GenerateToken("u-1", "a@b.c")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", "storyverse", 0).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret", "storyverse", 0).ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
