package jwtinfra

import (
	"testing"
	"time"

	"github.com/car-parts-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, ttl time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		AccessTokenSecret: "test-secret",
		AccessTokenTTL:    ttl,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{AccessTokenTTL: time.Hour})
	assert.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	token, err := p.Sign("alice@example.com")
	require.NoError(t, err)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t, -time.Minute) // already expired at issuance

	token, err := p.Sign("alice@example.com")
	require.NoError(t, err)

	_, err = p.Verify(token)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := newTestProvider(t, time.Hour)
	token, err := issuer.Sign("alice@example.com")
	require.NoError(t, err)

	verifier, err := NewProvider(&config.Config{
		AccessTokenSecret: "a-different-secret",
		AccessTokenTTL:    time.Hour,
	})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerify_RejectsNonHMACAlgorithm(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	// alg=none token with otherwise valid claims.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: "alice@example.com"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = p.Verify(token)
	assert.Error(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	p := newTestProvider(t, time.Hour)
	_, err := p.Verify("not-a-jwt")
	assert.Error(t, err)
}
