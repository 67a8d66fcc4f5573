package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"handoff/internal/util/memzero"
)

const (
	scopedKeyInfoPrefix = "identity.mozilla.com/picl/v1/scoped_key\n"

	fingerprintBytes = 16
	ScopedKeyBytes   = 32
)

var errLengthMismatch = errors.New("crypto: xor operands differ in length")

// XOR returns a ^ b. Both slices must have the same length.
func XOR(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, errLengthMismatch
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// DeriveScopedKey derives the key for one key-bearing scope from kB.
//
// HKDF-SHA256 with the hex-encoded rotation secret as salt and the scope
// identifier in the info string yields 48 bytes: the first 16 fingerprint
// the key id, the last 32 are the key itself.
func DeriveScopedKey(kB []byte, rotationSecretHex, identifier string, timestamp int64) (kid string, key []byte, err error) {
	salt, err := hex.DecodeString(rotationSecretHex)
	if err != nil {
		return "", nil, fmt.Errorf("key rotation secret: %w", err)
	}
	r := hkdf.New(sha256.New, kB, salt, []byte(scopedKeyInfoPrefix+identifier))
	out := make([]byte, fingerprintBytes+ScopedKeyBytes)
	defer memzero.Zero(out)
	if _, err := io.ReadFull(r, out); err != nil {
		return "", nil, err
	}
	key = make([]byte, ScopedKeyBytes)
	copy(key, out[fingerprintBytes:])
	return KeyID(timestamp, out[:fingerprintBytes]), key, nil
}
