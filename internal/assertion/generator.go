package assertion

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"handoff/internal/crypto"
	"handoff/internal/domain"
	"handoff/internal/util/memzero"
)

const (
	DefaultCertDuration      = 6 * time.Hour
	DefaultAssertionDuration = 5 * time.Minute
)

// Claims is the payload of the signed assertion.
type Claims struct {
	ClientID string `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// Generator implements domain.AssertionGenerator against an auth server.
type Generator struct {
	auth         domain.AuthClient
	audience     string
	certDuration time.Duration
	ttl          time.Duration
	now          func() time.Time
}

// New returns a Generator whose assertions are addressed to audience, the
// OAuth server URL. A zero ttl uses DefaultAssertionDuration.
func New(auth domain.AuthClient, audience string, ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = DefaultAssertionDuration
	}
	return &Generator{
		auth:         auth,
		audience:     audience,
		certDuration: DefaultCertDuration,
		ttl:          ttl,
		now:          time.Now,
	}
}

// Generate returns a backed assertion for sessionToken.
//
// Steps:
//  1. Create an ephemeral Ed25519 key pair.
//  2. Have the auth server sign the public key into a certificate.
//  3. Sign an EdDSA JWT with aud, iat, exp, jti and client_id.
//  4. Join certificate and assertion with "~".
func (g *Generator) Generate(ctx context.Context, sessionToken, clientID string) (string, error) {
	priv, pub, err := crypto.GenerateEd25519()
	if err != nil {
		return "", err
	}
	defer memzero.Zero(priv[:])

	cert, err := g.auth.CertificateSign(ctx, sessionToken, crypto.Ed25519JWK(pub), g.certDuration)
	if err != nil {
		return "", err
	}

	now := g.now()
	claims := Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{g.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(ed25519.PrivateKey(priv[:]))
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}
	return cert + "~" + signed, nil
}

// Compile-time assertion that Generator implements domain.AssertionGenerator.
var _ domain.AssertionGenerator = (*Generator)(nil)
