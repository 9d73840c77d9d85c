package auth

import (
	"testing"

	"adops_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough password"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "manager")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "viewer")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "rotated-secret"
	defer func() { config.AppConfig.JWT.Secret = "unit-test-secret" }()

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPermissions(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, "analytics:ingest"))
	assert.True(t, HasPermission(RoleManager, "campaigns:write"))
	assert.False(t, HasPermission(RoleViewer, "campaigns:write"))
	assert.False(t, HasPermission("unknown", "campaigns:read"))

	assert.True(t, IsAdmin(&Claims{Role: RoleAdmin}))
	assert.False(t, IsAdmin(&Claims{Role: RoleViewer}))
}
