package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotBoolean is returned when a FlexBool holds anything but a boolean.
var ErrNotBoolean = errors.New("not a boolean")

// RelierParams are the validated OAuth parameters of the relying party for a
// single flow.
type RelierParams struct {
	ClientID            string   `json:"client_id"`
	Scope               string   `json:"scope"`
	State               string   `json:"state"`
	Action              Action   `json:"action,omitempty"`
	AccessType          string   `json:"access_type,omitempty"`
	KeysJWK             string   `json:"keys_jwk,omitempty"`
	CodeChallenge       string   `json:"code_challenge,omitempty"`
	CodeChallengeMethod string   `json:"code_challenge_method,omitempty"`
	RedirectURI         string   `json:"redirect_uri,omitempty"`
	RedirectTo          string   `json:"redirectTo,omitempty"`
	Prompt              string   `json:"prompt,omitempty"`
	Permissions         []string `json:"permissions,omitempty"`

	// Populated from client info.
	ServiceName string `json:"serviceName,omitempty"`
	ImageURI    string `json:"imageUri,omitempty"`
	Trusted     bool   `json:"trusted,omitempty"`

	// Carried into resume tokens.
	Entrypoint           string `json:"entrypoint,omitempty"`
	ResetPasswordConfirm bool   `json:"resetPasswordConfirm,omitempty"`
	UTMCampaign          string `json:"utm_campaign,omitempty"`
	UTMContent           string `json:"utm_content,omitempty"`
	UTMMedium            string `json:"utm_medium,omitempty"`
	UTMSource            string `json:"utm_source,omitempty"`
	UTMTerm              string `json:"utm_term,omitempty"`
}

// Service returns the service identifier reported for the relier.
func (r RelierParams) Service() string { return r.ClientID }

// Context returns the auth context of an OAuth relier.
func (r RelierParams) Context() string { return "oauth" }

// WantsConsent reports whether the relier asked for the consent prompt.
func (r RelierParams) WantsConsent() bool { return r.Prompt == "consent" }

// ResumeTokenInfo is the subset of relier state carried across a resume token.
type ResumeTokenInfo struct {
	Entrypoint           string `json:"entrypoint,omitempty"`
	ResetPasswordConfirm bool   `json:"resetPasswordConfirm,omitempty"`
	UTMCampaign          string `json:"utm_campaign,omitempty"`
	UTMContent           string `json:"utm_content,omitempty"`
	UTMMedium            string `json:"utm_medium,omitempty"`
	UTMSource            string `json:"utm_source,omitempty"`
	UTMTerm              string `json:"utm_term,omitempty"`
}

// ClientInfo is the OAuth server's registration record for a client. Name
// and RedirectURI are nil when the server omitted them.
type ClientInfo struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	RedirectURI *string  `json:"redirect_uri"`
	ImageURI    string   `json:"image_uri,omitempty"`
	Trusted     FlexBool `json:"trusted"`
}

// FlexBool decodes a JSON boolean or the strings "true" and "false".
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrNotBoolean, data)
	}
	switch strings.TrimSpace(s) {
	case "true":
		*b = true
	case "false":
		*b = false
	default:
		return fmt.Errorf("%w: %q", ErrNotBoolean, s)
	}
	return nil
}
