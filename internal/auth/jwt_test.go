package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate(42, "ada@example.com")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Generate(1, "x@example.com")
	require.NoError(t, err)

	expired, err := NewTokenIssuer("test-secret", -time.Minute)
	require.NoError(t, err)
	stale, err := expired.Generate(1, "x@example.com")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": foreign,
		"expired":      stale,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}
