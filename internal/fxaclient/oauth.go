package fxaclient

import (
	"context"
	"net/http"
	"net/url"

	"handoff/internal/domain"
)

// OAuthHTTP is the OAuth server client.
type OAuthHTTP struct {
	HTTP
}

// NewOAuth returns a client for the OAuth server at base. A nil hc uses
// http.DefaultClient.
func NewOAuth(base string, hc *http.Client) *OAuthHTTP {
	return &OAuthHTTP{HTTP: newHTTP(base, hc)}
}

// GetCode posts the code grant. An empty or null body yields a nil response.
func (c *OAuthHTTP) GetCode(ctx context.Context, req domain.CodeRequest) (*domain.CodeResponse, error) {
	var out domain.CodeResponse
	ok, err := c.post(ctx, "/v1/authorization", "", req, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// GetClientKeyData returns key metadata keyed by scope.
func (c *OAuthHTTP) GetClientKeyData(
	ctx context.Context,
	req domain.KeyDataRequest,
) (map[string]domain.ScopedKeyData, error) {
	out := make(map[string]domain.ScopedKeyData)
	if _, err := c.post(ctx, "/v1/key-data", "", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClientInfo fetches the registration of clientID.
func (c *OAuthHTTP) GetClientInfo(ctx context.Context, clientID string) (domain.ClientInfo, error) {
	var out domain.ClientInfo
	if _, err := c.getJSON(ctx, "/v1/client/"+url.PathEscape(clientID), "", &out); err != nil {
		return domain.ClientInfo{}, err
	}
	return out, nil
}

// Compile-time assertion that OAuthHTTP implements domain.OAuthClient.
var _ domain.OAuthClient = (*OAuthHTTP)(nil)
