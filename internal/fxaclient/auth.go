package fxaclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"handoff/internal/domain"
)

var errNoCertificate = errors.New("certificate/sign: empty certificate")

// AuthHTTP is the auth server client. Session and key fetch tokens are sent
// as bearer credentials.
type AuthHTTP struct {
	HTTP
}

// NewAuth returns a client for the auth server at base. A nil hc uses
// http.DefaultClient.
func NewAuth(base string, hc *http.Client) *AuthHTTP {
	return &AuthHTTP{HTTP: newHTTP(base, hc)}
}

// CertificateSign asks the server to certify publicKey for duration.
func (c *AuthHTTP) CertificateSign(
	ctx context.Context,
	sessionToken string,
	publicKey domain.PublicKeyJWK,
	duration time.Duration,
) (string, error) {
	in := struct {
		PublicKey domain.PublicKeyJWK `json:"publicKey"`
		Duration  int64               `json:"duration"`
	}{PublicKey: publicKey, Duration: duration.Milliseconds()}
	var out struct {
		Cert string `json:"cert"`
	}
	if _, err := c.post(ctx, "/v1/certificate/sign", sessionToken, in, &out); err != nil {
		return "", err
	}
	if out.Cert == "" {
		return "", errNoCertificate
	}
	return out.Cert, nil
}

// AccountKeys fetches kA and wrapKB with a key fetch token.
func (c *AuthHTTP) AccountKeys(ctx context.Context, keyFetchToken string) (domain.EncryptedAccountKeys, error) {
	var out domain.EncryptedAccountKeys
	if _, err := c.getJSON(ctx, "/v1/account/keys", keyFetchToken, &out); err != nil {
		return domain.EncryptedAccountKeys{}, err
	}
	return out, nil
}

// VerifySessionCode confirms an unverified session with a sign-in code.
func (c *AuthHTTP) VerifySessionCode(ctx context.Context, sessionToken, code string) error {
	in := struct {
		Code string `json:"code"`
	}{Code: code}
	_, err := c.post(ctx, "/v1/session/verify_code", sessionToken, in, nil)
	return err
}

// Compile-time assertion that AuthHTTP implements domain.AuthClient.
var _ domain.AuthClient = (*AuthHTTP)(nil)
