package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-backend/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "edu-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	j := NewJWTManager(testConfig())

	token, err := j.GenerateToken(42, RoleUser)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, "edu-backend", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	j := NewJWTManager(testConfig())
	token, err := j.GenerateToken(1, RoleAdmin)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	j := NewJWTManager(testConfig())
	_, err := j.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
}
