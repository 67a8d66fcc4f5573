package types

// AccountKeys holds the raw class-A and class-B account keys.
type AccountKeys struct {
	KA []byte
	KB []byte
}

// EncryptedAccountKeys is the auth server's /account/keys reply, hex-encoded.
type EncryptedAccountKeys struct {
	KA     string `json:"kA"`
	WrapKB string `json:"wrapKB"`
}

// ScopedKeyData is the OAuth server's key metadata for one key-bearing scope.
type ScopedKeyData struct {
	Identifier           string `json:"identifier"`
	KeyRotationSecret    string `json:"keyRotationSecret"`
	KeyRotationTimestamp int64  `json:"keyRotationTimestamp"`
}

// ScopedKey is one entry of the bundle delivered to the relier.
type ScopedKey struct {
	Kty   string `json:"kty"`
	Scope string `json:"scope"`
	K     string `json:"k"`
	Kid   string `json:"kid"`
}

// PublicKeyJWK is an OKP public key as sent for certificate signing.
type PublicKeyJWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
}

// Ed25519Public is a raw Ed25519 public key.
type Ed25519Public [32]byte

// Ed25519Private is a raw Ed25519 private key (seed || public).
type Ed25519Private [64]byte
