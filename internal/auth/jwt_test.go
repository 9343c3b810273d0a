package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelbase/catalog/internal/conf"
)

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&conf.Auth{JwtSecret: "test-secret", JwtExpiry: "1h"})
	require.NoError(t, err)
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager(&conf.Auth{})
	assert.Error(t, err)
}

func TestIssueAndValidate(t *testing.T) {
	m := newTestManager(t)

	token, expiresAt, err := m.Issue("user@example.com", 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewJWTManager(&conf.Auth{JwtSecret: "different"})
	require.NoError(t, err)

	token, _, err := other.Issue("user@example.com", 1)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	m, err := NewJWTManager(&conf.Auth{JwtSecret: "test-secret", JwtExpiry: "-1h"})
	require.NoError(t, err)

	token, _, err := m.Issue("user@example.com", 1)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Validate("not-a-token")
	assert.Error(t, err)
}
