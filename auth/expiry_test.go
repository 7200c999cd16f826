package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rgonek/contentdesk/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	got, ok := Expiry(signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = Expiry(signedToken(t, jwt.RegisteredClaims{Subject: "u1"}))
	assert.False(t, ok)

	_, ok = Expiry("tok-1")
	assert.False(t, ok)
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	past := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))})
	future := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})

	assert.True(t, Expired(past, now))
	assert.False(t, Expired(future, now))
	assert.False(t, Expired("opaque", now))
}

func TestFileStoreRejectsExpiredToken(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	store.now = func() time.Time { return now }

	expired := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second))})
	require.NoError(t, store.Save(expired))

	_, err := store.Token(context.Background())
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, apiclient.ErrNoToken)

	valid := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})
	require.NoError(t, store.Save(valid))

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, valid, token)
}
