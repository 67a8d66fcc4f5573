package relier

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"regexp"
)

// CodeChallengeMethodS256 is the only accepted PKCE challenge method.
const CodeChallengeMethodS256 = "S256"

var codeChallengeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{43,128}$`)

// GenerateCodeVerifier returns a random PKCE code verifier.
func GenerateCodeVerifier() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ComputeS256Challenge computes the OAuth PKCE S256 challenge from a verifier.
func ComputeS256Challenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
