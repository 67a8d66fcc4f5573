// Package crypto exposes the minimal primitives used by the OAuth flow.
//
// Contents
//
//   - Ephemeral Ed25519 key generation (GenerateEd25519) plus the OKP JWK
//     form of a public key
//   - Scoped key derivation from kB via HKDF-SHA256 (DeriveScopedKey) and
//     the "<timestamp>-<fingerprint>" key id (KeyID)
//   - Account key unwrapping (XOR)
//   - base64url helpers
//
// # Notes
//
// Derived secrets are returned in fresh slices; callers own them and should
// wipe them with memzero.Zero once delivered.
package crypto
