package types

import "time"

// FlowState is the checkpoint written before a flow leaves this process
// (for example to wait on email verification) and read back to resume it.
type FlowState struct {
	FlowID              string    `json:"flow_id"`
	Action              Action    `json:"action,omitempty"`
	ClientID            string    `json:"client_id"`
	Scope               string    `json:"scope"`
	State               string    `json:"state"`
	AccessType          string    `json:"access_type,omitempty"`
	KeysJWK             string    `json:"keys_jwk,omitempty"`
	CodeChallenge       string    `json:"code_challenge,omitempty"`
	CodeChallengeMethod string    `json:"code_challenge_method,omitempty"`
	RedirectURI         string    `json:"redirect_uri,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// FlowStateFromRelier captures the parameters needed to resume a flow.
func FlowStateFromRelier(flowID string, r RelierParams, now time.Time) FlowState {
	return FlowState{
		FlowID:              flowID,
		Action:              r.Action,
		ClientID:            r.ClientID,
		Scope:               r.Scope,
		State:               r.State,
		AccessType:          r.AccessType,
		KeysJWK:             r.KeysJWK,
		CodeChallenge:       r.CodeChallenge,
		CodeChallengeMethod: r.CodeChallengeMethod,
		RedirectURI:         r.RedirectURI,
		CreatedAt:           now.UTC(),
	}
}
