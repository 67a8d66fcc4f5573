package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the encrypted blob format stored on disk.
	envelopeFormatVersion = 1

	envelopeLabel = "handoff/account"
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted account file")
)

// envelope is the on-disk JSON structure holding the ciphertext and KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw into a JSON envelope.
func seal(passphrase string, raw []byte, params scryptParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	aead, err := envelopeAEAD(passphrase, salt[:], params)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	env := envelope{
		V:     envelopeFormatVersion,
		Salt:  salt[:],
		N:     params.N,
		R:     params.R,
		P:     params.P,
		Nonce: nonce,
	}
	env.Cipher = aead.Seal(nil, nonce, raw, env.aad())
	return json.Marshal(env)
}

// open decrypts a JSON envelope using a key derived from passphrase.
func open(passphrase string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	if env.V > envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported account file version %d", env.V)
	}
	aead, err := envelopeAEAD(passphrase, env.Salt, scryptParams{N: env.N, R: env.R, P: env.P})
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, env.aad())
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// aad binds the ciphertext to the label, version and salt.
func (e envelope) aad() []byte {
	return fmt.Appendf(nil, "%s/v%d/%x", envelopeLabel, e.V, e.Salt)
}

func envelopeAEAD(passphrase string, salt []byte, params scryptParams) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

// scryptParams are the tunables for scrypt key derivation.
type scryptParams struct {
	N, R, P int
}

func defaultScryptParams() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }
