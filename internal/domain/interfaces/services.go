package interfaces

import (
	"context"

	domaintypes "handoff/internal/domain/types"
)

// AssertionGenerator produces an identity assertion for the OAuth server.
type AssertionGenerator interface {
	Generate(ctx context.Context, sessionToken, clientID string) (string, error)
}

// AccountKeysDeriver obtains the raw account keys. It returns nil keys and a
// nil error when the account cannot provide them.
type AccountKeysDeriver interface {
	AccountKeys(ctx context.Context, account *domaintypes.Account) (*domaintypes.AccountKeys, error)
}

// ScopedKeysEncrypter derives per-scope keys and encrypts them to the
// relier's public key.
type ScopedKeysEncrypter interface {
	CreateEncryptedBundle(
		keys *domaintypes.AccountKeys,
		keyData map[string]domaintypes.ScopedKeyData,
		keysJWK string,
	) (string, error)
}

// OAuthResultProvider runs the handoff sequence.
type OAuthResultProvider interface {
	GetOAuthResult(
		ctx context.Context,
		account *domaintypes.Account,
		relier domaintypes.RelierParams,
	) (domaintypes.OAuthResult, error)
}

// Dispatcher delivers a finished OAuth result to the relier.
type Dispatcher interface {
	SendOAuthResult(ctx context.Context, result domaintypes.OAuthResult) (domaintypes.Behavior, error)
}
