package relier

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"handoff/internal/domain"
)

// AccountNeedsPermissions reports whether account must be asked to grant
// permissions to the relier. Trusted reliers only ask with prompt=consent.
// Permissions the account has no value for are never asked for.
func AccountNeedsPermissions(account *domain.Account, params domain.RelierParams) bool {
	if params.Trusted && !params.WantsConsent() {
		return false
	}
	var withValues []string
	for _, p := range params.Permissions {
		if account.PermissionValue(p) != "" {
			withValues = append(withValues, p)
		}
	}
	return !account.HasSeenPermissions(params.ClientID, withValues)
}

// PickResumeTokenInfo returns the relier fields carried in a resume token.
// OAuth state stays out of it; the flow-state record carries that.
func PickResumeTokenInfo(params domain.RelierParams) domain.ResumeTokenInfo {
	return domain.ResumeTokenInfo{
		Entrypoint:           params.Entrypoint,
		ResetPasswordConfirm: params.ResetPasswordConfirm,
		UTMCampaign:          params.UTMCampaign,
		UTMContent:           params.UTMContent,
		UTMMedium:            params.UTMMedium,
		UTMSource:            params.UTMSource,
		UTMTerm:              params.UTMTerm,
	}
}

// EncodeResumeToken serialises info for a verification link.
func EncodeResumeToken(info domain.ResumeTokenInfo) (string, error) {
	b, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeResumeToken reverses EncodeResumeToken.
func DecodeResumeToken(token string) (domain.ResumeTokenInfo, error) {
	var info domain.ResumeTokenInfo
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return info, fmt.Errorf("resume token: %w", err)
	}
	if err := json.Unmarshal(b, &info); err != nil {
		return info, fmt.Errorf("resume token: %w", err)
	}
	return info, nil
}
