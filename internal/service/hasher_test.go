package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, h.Verify("correct horse", hash))
	assert.False(t, h.Verify("correct horse!", hash))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	h := NewBcryptHasher()

	first, err := h.Hash("123456")
	require.NoError(t, err)
	second, err := h.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("123456", first))
	assert.True(t, h.Verify("123456", second))
}

func TestBcryptHasher_MalformedHashNeverMatches(t *testing.T) {
	assert.False(t, NewBcryptHasher().Verify("123456", "not-a-hash"))
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	_, err := NewBcryptHasher().Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrBadRequest)
}
