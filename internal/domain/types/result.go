package types

// OAuthResult is handed to the relier once the flow succeeds.
type OAuthResult struct {
	Redirect string `json:"redirect"`
	Code     string `json:"code"`
	State    string `json:"state"`
	Action   Action `json:"action"`
	Keys     string `json:"keys,omitempty"` // compact JWE of the scoped key bundle
}

// CodeRequest is the authorization code grant request body.
type CodeRequest struct {
	Assertion           string `json:"assertion"`
	ClientID            string `json:"client_id"`
	Scope               string `json:"scope"`
	State               string `json:"state"`
	AccessType          string `json:"access_type,omitempty"`
	CodeChallenge       string `json:"code_challenge,omitempty"`
	CodeChallengeMethod string `json:"code_challenge_method,omitempty"`
}

// CodeResponse is the authorization server's reply to a CodeRequest.
type CodeResponse struct {
	Redirect string `json:"redirect"`
	Code     string `json:"code,omitempty"`
	State    string `json:"state,omitempty"`
}

// KeyDataRequest asks the OAuth server for per-scope key metadata.
type KeyDataRequest struct {
	Assertion string `json:"assertion"`
	ClientID  string `json:"client_id"`
	Scope     string `json:"scope"`
}
