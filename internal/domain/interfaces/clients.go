package interfaces

import (
	"context"
	"time"

	domaintypes "handoff/internal/domain/types"
)

// OAuthClient talks to the OAuth authorization server.
type OAuthClient interface {
	// GetCode exchanges an assertion for an authorization code. A nil
	// response with a nil error means the server returned no body.
	GetCode(ctx context.Context, req domaintypes.CodeRequest) (*domaintypes.CodeResponse, error)
	GetClientKeyData(
		ctx context.Context,
		req domaintypes.KeyDataRequest,
	) (map[string]domaintypes.ScopedKeyData, error)
	GetClientInfo(ctx context.Context, clientID string) (domaintypes.ClientInfo, error)
}

// AuthClient talks to the account authentication server.
type AuthClient interface {
	CertificateSign(
		ctx context.Context,
		sessionToken string,
		publicKey domaintypes.PublicKeyJWK,
		duration time.Duration,
	) (string, error)
	AccountKeys(ctx context.Context, keyFetchToken string) (domaintypes.EncryptedAccountKeys, error)
	VerifySessionCode(ctx context.Context, sessionToken, code string) error
}
