package relier

import (
	"slices"

	"handoff/internal/domain"
	"handoff/internal/flowerr"
)

// ScopeValidation lists the redirect URIs allowed to receive keys for one
// key-bearing scope.
type ScopeValidation struct {
	RedirectURIs []string `json:"redirectUris"`
}

// WantsKeys reports whether scoped keys should be provisioned for params.
// It fails when keys were asked for but the key scope request is invalid.
func (s *Service) WantsKeys(params domain.RelierParams) (bool, error) {
	if !s.cfg.ScopedKeysEnabled || params.KeysJWK == "" {
		return false, nil
	}
	return s.validateKeyScopeRequest(params)
}

// validateKeyScopeRequest checks that at least one requested scope is key
// bearing and that every key-bearing scope allows the relier's redirect URI.
func (s *Service) validateKeyScopeRequest(params domain.RelierParams) (bool, error) {
	if params.KeysJWK == "" {
		return false, nil
	}
	scopes := splitScope(params.Scope)
	if len(scopes) == 0 {
		return false, &flowerr.Error{Kind: flowerr.InvalidParameter, Message: "Invalid scope parameter", Param: "scope"}
	}

	keyBearing := 0
	for _, scope := range scopes {
		rule, ok := s.cfg.ScopedKeysValidation[scope]
		if !ok {
			continue
		}
		keyBearing++
		if !slices.Contains(rule.RedirectURIs, params.RedirectURI) {
			return false, &flowerr.Error{Kind: flowerr.InvalidParameter, Message: "Invalid redirect parameter", Param: "redirect_uri"}
		}
	}
	if keyBearing == 0 {
		return false, &flowerr.Error{Kind: flowerr.InvalidParameter, Message: "No key-bearing scopes requested", Param: "scope"}
	}
	return true, nil
}
