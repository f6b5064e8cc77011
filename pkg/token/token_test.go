package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Parallel()
	signed, err := GenerateJWT(42, "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateJWT(signed, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ScorerID)
}

func TestValidateJWTRejects(t *testing.T) {
	t.Parallel()

	t.Run("wrong secret", func(t *testing.T) {
		signed, err := GenerateJWT(42, "secret", 15)
		require.NoError(t, err)
		_, err = ValidateJWT(signed, "other")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		signed, err := GenerateJWT(42, "secret", -1)
		require.NoError(t, err)
		_, err = ValidateJWT(signed, "secret")
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ValidateJWT("", "secret")
		assert.Error(t, err)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := ValidateJWT("abc", "")
		assert.Error(t, err)
	})
}
