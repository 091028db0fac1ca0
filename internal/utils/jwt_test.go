package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elite_market/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	profile := models.Profile{ID: "user-1", Email: "ana@example.com"}

	token, err := GenerateJWT("secret", profile, time.Now())
	require.NoError(t, err)

	claims, err := ParseJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestJWTRejects(t *testing.T) {
	profile := models.Profile{ID: "user-1", Email: "ana@example.com"}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateJWT("secret", profile, time.Now())
		require.NoError(t, err)
		_, err = ParseJWT("other", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateJWT("secret", profile, time.Now().Add(-2*TokenTTL))
		require.NoError(t, err)
		_, err = ParseJWT("secret", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseJWT("secret", "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no secret", func(t *testing.T) {
		_, err := GenerateJWT("", profile, time.Now())
		assert.Error(t, err)
	})
}
