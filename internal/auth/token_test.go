package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.RoleCitizen)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 24).GenerateToken("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 24).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)

	_, err = tm.ParseToken("")
	assert.Error(t, err)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.GenerateToken("user-1", domain.RoleCitizen)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}
