package scopedkeys

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-jose/go-jose/v4"

	"handoff/internal/crypto"
	"handoff/internal/domain"
	"handoff/internal/util/memzero"
)

var (
	errInvalidJWK  = errors.New("keys_jwk: not an EC public key")
	errNoKB        = errors.New("scoped keys: kB missing")
	errNoScopeData = errors.New("scoped keys: no key data")
)

// Encrypter implements domain.ScopedKeysEncrypter.
type Encrypter struct{}

// New returns an Encrypter.
func New() *Encrypter { return &Encrypter{} }

// CreateEncryptedBundle derives one key per entry of keyData and returns the
// set as a compact JWE addressed to keysJWK.
func (e *Encrypter) CreateEncryptedBundle(
	keys *domain.AccountKeys,
	keyData map[string]domain.ScopedKeyData,
	keysJWK string,
) (string, error) {
	if keys == nil || len(keys.KB) == 0 {
		return "", errNoKB
	}
	if len(keyData) == 0 {
		return "", errNoScopeData
	}
	pub, err := ParseKeysJWK(keysJWK)
	if err != nil {
		return "", err
	}

	bundle, err := DeriveScopedKeys(keys.KB, keyData)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(bundle)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(payload)

	enc, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.ECDH_ES, Key: pub},
		(&jose.EncrypterOptions{}).WithContentType("application/json"),
	)
	if err != nil {
		return "", fmt.Errorf("jwe encrypter: %w", err)
	}
	obj, err := enc.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("jwe encrypt: %w", err)
	}
	return obj.CompactSerialize()
}

// DeriveScopedKeys derives the scoped key for every scope in keyData. A
// missing identifier falls back to the scope itself.
func DeriveScopedKeys(kB []byte, keyData map[string]domain.ScopedKeyData) (map[string]domain.ScopedKey, error) {
	out := make(map[string]domain.ScopedKey, len(keyData))
	for scope, data := range keyData {
		id := data.Identifier
		if id == "" {
			id = scope
		}
		kid, key, err := crypto.DeriveScopedKey(kB, data.KeyRotationSecret, id, data.KeyRotationTimestamp)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", scope, err)
		}
		out[scope] = domain.ScopedKey{Kty: "oct", Scope: scope, K: crypto.B64URL(key), Kid: kid}
		memzero.Zero(key)
	}
	return out, nil
}

// ParseKeysJWK decodes the relier's public key. The value is base64url JSON;
// raw JSON is accepted too.
func ParseKeysJWK(s string) (*ecdsa.PublicKey, error) {
	s = strings.TrimSpace(s)
	raw := []byte(s)
	if !strings.HasPrefix(s, "{") {
		decoded, err := crypto.DecodeB64URL(s)
		if err != nil {
			return nil, fmt.Errorf("keys_jwk: %w", err)
		}
		raw = decoded
	}
	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("keys_jwk: %w", err)
	}
	pub, ok := jwk.Key.(*ecdsa.PublicKey)
	if !ok || !jwk.Valid() {
		return nil, errInvalidJWK
	}
	return pub, nil
}

// Compile-time assertion that Encrypter implements domain.ScopedKeysEncrypter.
var _ domain.ScopedKeysEncrypter = (*Encrypter)(nil)
