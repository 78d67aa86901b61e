package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessToken_IssueAndVerify(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice@x.com", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	subject, err := VerifyAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", subject)
}

func TestAccessToken_Expired(t *testing.T) {
	// A token issued already expired must fail verification.
	tok, err := NewAccessToken(testSecret, "alice@x.com", -1)
	require.NoError(t, err)

	_, err = VerifyAccessToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice@x.com", 15)
	require.NoError(t, err)

	_, err = VerifyAccessToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := VerifyAccessToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}

func TestRefreshToken_IssueAndVerify(t *testing.T) {
	tok, err := NewRefreshToken(testSecret, "alice@x.com", 1)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), tok.Exp, 5*time.Second)

	subject, err := VerifyRefreshToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", subject)
}

func TestRefreshToken_RejectedAsAccess(t *testing.T) {
	// A refresh token must never pass the access gate, even with a valid
	// signature and expiry.
	tok, err := NewRefreshToken(testSecret, "alice@x.com", 1)
	require.NoError(t, err)

	_, err = VerifyAccessToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_RejectedAsRefresh(t *testing.T) {
	// The type discriminator is required for refresh call sites.
	tok, err := NewAccessToken(testSecret, "alice@x.com", 15)
	require.NoError(t, err)

	_, err = VerifyRefreshToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestToken_Tampered(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice@x.com", 15)
	require.NoError(t, err)

	tampered := tok.Token[:len(tok.Token)-2] + "xx"
	_, err = VerifyAccessToken(testSecret, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
