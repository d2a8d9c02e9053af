package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "bob", "admin", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	// Expiry sits roughly one hour out
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseJWTExpired(t *testing.T) {
	// A token issued with a negative TTL is already past its expiry
	token, err := GenerateJWT(42, "bob", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "bob", "user", "some-other-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
