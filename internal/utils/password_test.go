package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pw", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotContains(t, hash, "s3cret-pw", "hash must not embed the plaintext")
	assert.True(t, VerifyPassword(hash, "s3cret-pw"))
	assert.False(t, VerifyPassword(hash, "wrong-pw"))
}

func TestHashPassword_SelfContained(t *testing.T) {
	// The hash embeds its own salt and cost, so verification needs nothing
	// but the hash string itself.
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected bcrypt format, got %q", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPassword_DistinctHashes(t *testing.T) {
	h1, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	// Fresh salt per hash.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "same"))
	assert.True(t, VerifyPassword(h2, "same"))
}

func TestVerifyPassword_CrossHash(t *testing.T) {
	h1, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, VerifyPassword(h1, "pw2"))
}
