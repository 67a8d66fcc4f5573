package assertion_test

import (
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handoff/internal/assertion"
	"handoff/internal/crypto"
	"handoff/internal/domain"
)

type fakeAuth struct {
	domain.AuthClient // unused methods panic

	gotToken string
	gotKey   domain.PublicKeyJWK
	err      error
}

func (f *fakeAuth) CertificateSign(_ context.Context, token string, pk domain.PublicKeyJWK, _ time.Duration) (string, error) {
	f.gotToken, f.gotKey = token, pk
	if f.err != nil {
		return "", f.err
	}
	return "cert", nil
}

func TestGenerate_BackedAssertion(t *testing.T) {
	auth := &fakeAuth{}
	g := assertion.New(auth, "https://oauth.example.com", time.Minute)

	out, err := g.Generate(context.Background(), "abc123", "clientId")
	require.NoError(t, err)
	assert.Equal(t, "abc123", auth.gotToken)

	cert, signed, ok := strings.Cut(out, "~")
	require.True(t, ok)
	assert.Equal(t, "cert", cert)

	pubRaw, err := crypto.DecodeB64URL(auth.gotKey.X)
	require.NoError(t, err)

	var claims assertion.Claims
	_, err = jwt.ParseWithClaims(signed, &claims, func(tok *jwt.Token) (any, error) {
		return ed25519.PublicKey(pubRaw), nil
	}, jwt.WithValidMethods([]string{"EdDSA"}), jwt.WithAudience("https://oauth.example.com"))
	require.NoError(t, err)
	assert.Equal(t, "clientId", claims.ClientID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerate_PassesThroughSignError(t *testing.T) {
	boom := errors.New("uh oh")
	g := assertion.New(&fakeAuth{err: boom}, "aud", 0)

	_, err := g.Generate(context.Background(), "abc123", "clientId")
	assert.ErrorIs(t, err, boom)
}
