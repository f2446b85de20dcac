package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examgate/examgate-backend/internal/config"
)

func testAuthService(secret string) *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  secret,
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // Minimum cost keeps the test fast.
	}, nil)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := testAuthService("secret")

	hash, err := svc.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, svc.CheckPassword(hash, "password123"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := testAuthService("secret")
	studentID := uuid.New()

	signed, jti, err := svc.issueToken(studentID)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, jti)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)

	assert.Equal(t, studentID, claims.StudentID)
	assert.Equal(t, studentID.String(), claims.Subject)
	assert.Equal(t, jti, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := testAuthService("secret-a")
	verifier := testAuthService("secret-b")

	signed, _, err := issuer.issueToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := testAuthService("secret")

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
