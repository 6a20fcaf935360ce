package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/models"
)

func TestGenerateJWTCarriesSessionClaims(t *testing.T) {
	token, err := GenerateJWT(models.User{
		ID:     "u-1",
		Email:  "jean@example.com",
		Role:   models.RoleUser,
		CartID: "c-1",
	})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(config.JWTSecret()), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "jean@example.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])
	assert.Equal(t, "c-1", claims["cart_id"])
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	token, err := GeneratePasswordResetToken("jean@example.com")
	require.NoError(t, err)

	email, err := ParsePasswordResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jean@example.com", email)
}

func TestPasswordResetRejectsSessionToken(t *testing.T) {
	// Un token de session n'a pas le scope password_reset
	session, err := GenerateJWT(models.User{ID: "u-1", Email: "jean@example.com"})
	require.NoError(t, err)

	_, err = ParsePasswordResetToken(session)
	assert.Error(t, err)

	_, err = ParsePasswordResetToken("pas-un-token")
	assert.Error(t, err)
}
