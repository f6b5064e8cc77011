package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter23", hash))
}

func TestGenerateJoinCode(t *testing.T) {
	t.Parallel()
	code := GenerateJoinCode(6)
	assert.Len(t, code, 6)
	assert.Regexp(t, "^[0-9A-F]{6}$", code)

	// Codes are random; two draws colliding would be a broken generator.
	assert.NotEqual(t, GenerateJoinCode(12), GenerateJoinCode(12))
}
