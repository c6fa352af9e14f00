package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func TestStreamTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret)

	token, expiresIn, err := svc.GenerateStreamToken(Identity{UserID: "user-1", Role: RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	id, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.False(t, id.IsAdmin())
}

func TestValidateStreamToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret)

	token, _, err := svc.GenerateAccessToken("user-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(token)
	assert.ErrorIs(t, err, ErrInvalidStreamToken)
}

func TestValidateStreamToken_RejectsOtherSecret(t *testing.T) {
	token, _, err := NewJWTService("another-secret").GenerateStreamToken(Identity{UserID: "user-1", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = NewJWTService(testSecret).ValidateStreamToken(token)
	assert.ErrorIs(t, err, ErrInvalidStreamToken)
}

func TestIdentityFromContext(t *testing.T) {
	svc := NewJWTService(testSecret)

	tokenString, _, err := svc.GenerateAccessToken("admin-1", RoleAdmin, time.Hour)
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	id, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "admin-1", Role: RoleAdmin}, id)
	assert.True(t, id.IsAdmin())
}

func TestIdentityFromContext_UnknownRole(t *testing.T) {
	svc := NewJWTService(testSecret)

	tokenString, _, err := svc.GenerateAccessToken("user-1", "superuser", time.Hour)
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	_, err = IdentityFromContext(jwtauth.NewContext(context.Background(), token, nil))
	assert.ErrorIs(t, err, ErrMissingClaims)
}
