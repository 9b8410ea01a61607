package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken_Success(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()
	token := signToken(t, "test-secret", userID, time.Now().Add(time.Hour))

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := NewJWTService("test-secret")
	token := signToken(t, "other-secret", uuid.New(), time.Now().Add(time.Hour))

	_, err := service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret")
	token := signToken(t, "test-secret", uuid.New(), time.Now().Add(-time.Hour))

	_, err := service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Empty(t *testing.T) {
	service := NewJWTService("test-secret")
	_, err := service.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	service := NewJWTService("test-secret")
	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAsTokenValidator(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()
	token := signToken(t, "test-secret", userID, time.Now().Add(time.Hour))

	validator := service.AsTokenValidator()
	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}
