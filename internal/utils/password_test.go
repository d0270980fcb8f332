package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))
	assert.False(t, CheckPasswordHash("correct horse", ""))

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}
