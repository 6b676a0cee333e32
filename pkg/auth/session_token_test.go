package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionTokenOpaqueWithoutSecret(t *testing.T) {
	tok, err := GenerateSessionToken("reader@book.local", "", SessionTokenConfig{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tok, "mock-token-"), "got %q", tok)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := SessionTokenConfig{Secret: "test-secret", TTL: time.Hour}

	tok, err := GenerateSessionToken("reader@book.local", "L2511081234", cfg)
	require.NoError(t, err)

	claims, err := VerifySessionToken(tok, cfg)
	require.NoError(t, err)
	assert.Equal(t, "reader@book.local", claims.Account)
	assert.Equal(t, "L2511081234", claims.CardNo)
	assert.Equal(t, "reader@book.local", claims.Subject)

	// Unverified parse still exposes the claims.
	parsed, err := ParseSessionTokenUnverified(tok)
	require.NoError(t, err)
	assert.Equal(t, "reader@book.local", parsed.Account)
}

func TestVerifySessionTokenRejectsWrongSecret(t *testing.T) {
	tok, err := GenerateSessionToken("a", "", SessionTokenConfig{Secret: "right"})
	require.NoError(t, err)

	_, err = VerifySessionToken(tok, SessionTokenConfig{Secret: "wrong"})
	require.Error(t, err)
}
