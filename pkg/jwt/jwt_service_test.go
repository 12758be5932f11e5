package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanmald/plate-check-mvp/domain"
)

func TestGetClaimsByToken_Valid(t *testing.T) {
	svc := NewJWTService("super-secret", "https://abc.supabase.co/auth/v1")

	token, err := svc.GenerateAccessToken("7f1c", "sarah@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := svc.GetClaimsByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7f1c", claims.Subject)
	assert.Equal(t, "sarah@example.com", claims.Email)
	assert.Equal(t, "authenticated", claims.Role)
}

func TestGetClaimsByToken_Expired(t *testing.T) {
	svc := NewJWTService("super-secret", "issuer")

	token, err := svc.GenerateAccessToken("7f1c", "sarah@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetClaimsByToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("one", "issuer").GenerateAccessToken("7f1c", "a@b.co", time.Hour)
	require.NoError(t, err)

	_, err = NewJWTService("two", "issuer").GetClaimsByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetClaimsByToken_UnverifiedWithoutSecret(t *testing.T) {
	token, err := NewJWTService("one", "issuer").GenerateAccessToken("7f1c", "a@b.co", time.Hour)
	require.NoError(t, err)

	claims, err := NewJWTService("", "issuer").GetClaimsByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7f1c", claims.Subject)
}

func TestGetClaimsByToken_Empty(t *testing.T) {
	_, err := NewJWTService("one", "issuer").GetClaimsByToken("")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}
