package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("correct horse ", hash))
	assert.False(t, CheckPasswordHash("correct horse", "not-a-bcrypt-hash"))
}

func TestIsEmail(t *testing.T) {
	testCases := map[string]bool{
		"alice@example.com":          true,
		"bob.smith@mail.example.org": true,
		"no-at-sign":                 false,
		"@example.com":               false,
		"alice@":                     false,
		"":                           false,
	}
	for in, want := range testCases {
		assert.Equal(t, want, IsEmail(in), in)
	}
}

func TestNewToken(t *testing.T) {
	a, err := NewToken(32)
	require.NoError(t, err)
	b, err := NewToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("reset-token"), HashToken("reset-token"))
	assert.NotEqual(t, HashToken("reset-token"), HashToken("reset-tokem"))
	assert.Len(t, HashToken("reset-token"), 64)
}
