package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: "nimal",
		Role:     models.RoleAdmin,
	}

	token, err := tokens.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), principal.ID)
	assert.Equal(t, "nimal", principal.Username)
	assert.Equal(t, models.RoleAdmin, principal.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)
	user := &models.User{ID: primitive.NewObjectID(), Username: "nimal", Role: models.RoleRepresentative}

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Username: "nimal", Role: models.RoleRepresentative}

	token, err := issuer.Generate(user)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	_, err := tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
