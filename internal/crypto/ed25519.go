package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"handoff/internal/domain"
)

// GenerateEd25519 returns a new Ed25519 signing key pair.
func GenerateEd25519() (priv domain.Ed25519Private, pub domain.Ed25519Public, err error) {
	pk, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return priv, pub, err
	}
	copy(priv[:], sk)
	copy(pub[:], pk)
	return priv, pub, nil
}

// Ed25519JWK returns pub as an OKP JSON Web Key.
func Ed25519JWK(pub domain.Ed25519Public) domain.PublicKeyJWK {
	return domain.PublicKeyJWK{Kty: "OKP", Crv: "Ed25519", X: B64URL(pub[:])}
}
