package relier

import (
	"slices"
	"strings"
)

const trustedProfileScope = "profile"

var (
	untrustedAllowedPermissions = []string{
		"openid",
		"profile:display_name",
		"profile:email",
		"profile:uid",
	}
	trustedProfileExpansion = []string{
		"profile:uid",
		"profile:email",
		"profile:display_name",
		"profile:avatar",
	}
)

// splitScope splits a space separated scope, dropping duplicates.
func splitScope(scope string) []string {
	var out []string
	for _, s := range strings.Fields(scope) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// filterUntrusted keeps only permissions an untrusted relier may request.
func filterUntrusted(scopes []string) []string {
	var out []string
	for _, s := range scopes {
		if slices.Contains(untrustedAllowedPermissions, s) {
			out = append(out, s)
		}
	}
	return out
}

// expandTrusted replaces the bare profile scope with its sub-permissions.
func expandTrusted(scopes []string) []string {
	var out []string
	for _, s := range scopes {
		if s != trustedProfileScope {
			out = append(out, s)
			continue
		}
		for _, p := range trustedProfileExpansion {
			if !slices.Contains(out, p) && !slices.Contains(scopes, p) {
				out = append(out, p)
			}
		}
	}
	return out
}
