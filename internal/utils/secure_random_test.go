package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureRandomString_HexAndDistinct(t *testing.T) {
	a, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.Regexp(t, `^[0-9a-f]{32}$`, a)

	b, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}
