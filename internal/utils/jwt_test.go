package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	tok, err := m.GenerateJWT("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)

	claims, err := m.ValidateJWT(tok)
	require.NoError(t, err)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDefaultTTLIsOneDay(t *testing.T) {
	m := NewTokenManager("test-secret", 0)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	tok, err := m.GenerateJWT("u1")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestValidateJWTRejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	good, err := m.GenerateJWT("u1")
	require.NoError(t, err)

	expired := NewTokenManager("test-secret", -time.Hour)
	old, err := expired.GenerateJWT("u1")
	require.NoError(t, err)

	other, err := NewTokenManager("other-secret", time.Hour).GenerateJWT("u1")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", old},
		{"wrong secret", other},
		{"alg none", unsigned},
		{"garbage", "not-a-token"},
		{"truncated", good[:len(good)-4]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateJWT(tt.token)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrSecretNotConfigured)
		})
	}
}

func TestMissingSecret(t *testing.T) {
	m := NewTokenManager("", time.Hour)

	_, err := m.GenerateJWT("u1")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = m.ValidateJWT("anything")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}
