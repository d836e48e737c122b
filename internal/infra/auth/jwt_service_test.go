package auth

import (
	"testing"
	"time"

	"handshakeme/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "test_access_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = testAccessSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	jwtSvc, ok := svc.(*jwtService)
	require.True(t, ok)

	return jwtSvc
}

func signTestToken(t *testing.T, secret string, userID uuid.UUID, roles []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	tokenString := signTestToken(t, testAccessSecret, userID, []string{"master"})

	token, err := svc.ValidateToken(tokenString, testAccessSecret)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
}

func TestJWTService_ValidateTokenFallsBackToConfiguredSecret(t *testing.T) {
	svc := newTestJWTService(t)
	tokenString := signTestToken(t, testAccessSecret, uuid.New(), nil)

	// An empty secret argument means "use the configured access secret".
	token, err := svc.ValidateToken(tokenString, "")
	require.NoError(t, err)
	assert.True(t, token.Valid)
}

func TestJWTService_ValidateTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	tokenString := signTestToken(t, "a_completely_different_secret", uuid.New(), nil)

	_, err := svc.ValidateToken(tokenString, testAccessSecret)
	assert.Error(t, err)
}

func TestJWTService_ValidateTokenGarbage(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken("clearly-not-a-jwt-token-format", testAccessSecret)
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt access secret must be provided")
}
