package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.IssueLeagueToken("sleeper", "league-1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.VerifyLeagueToken(token)
	require.NoError(t, err)

	assert.Equal(t, "sleeper", claims.Platform)
	assert.Equal(t, "league-1234", claims.Identifier)
	assert.Equal(t, "sleeper:league-1234", claims.Subject)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").IssueLeagueToken("espn", "abc")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").VerifyLeagueToken(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	_, err := issuer.VerifyLeagueToken("not-a-token")
	assert.Error(t, err)

	_, err = issuer.VerifyLeagueToken("")
	assert.Error(t, err)
}
