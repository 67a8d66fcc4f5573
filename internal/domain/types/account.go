package types

import "slices"

// Account is the locally authenticated user. Tokens and key material are
// hex-encoded as the auth server issues them.
type Account struct {
	UID             string `json:"uid"`
	Email           string `json:"email"`
	SessionToken    string `json:"sessionToken"`
	SessionVerified bool   `json:"verified"`
	KeyFetchToken   string `json:"keyFetchToken,omitempty"`
	UnwrapBKey      string `json:"unwrapBKey,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`

	// GrantedPermissions maps client id to the permissions the user has
	// already consented to for that client.
	GrantedPermissions map[string][]string `json:"grantedPermissions,omitempty"`
}

// HasSessionToken reports whether the account can generate assertions.
func (a *Account) HasSessionToken() bool {
	return a != nil && a.SessionToken != ""
}

// HasSeenPermissions reports whether every permission in perms was already
// granted to clientID.
func (a *Account) HasSeenPermissions(clientID string, perms []string) bool {
	seen := a.GrantedPermissions[clientID]
	for _, p := range perms {
		if !slices.Contains(seen, p) {
			return false
		}
	}
	return true
}

// GrantPermissions records perms as seen for clientID.
func (a *Account) GrantPermissions(clientID string, perms []string) {
	if a.GrantedPermissions == nil {
		a.GrantedPermissions = make(map[string][]string)
	}
	seen := a.GrantedPermissions[clientID]
	for _, p := range perms {
		if !slices.Contains(seen, p) {
			seen = append(seen, p)
		}
	}
	a.GrantedPermissions[clientID] = seen
}

// PermissionValue returns the account attribute that backs a profile
// permission, or "" when the account has no value for it.
func (a *Account) PermissionValue(permission string) string {
	switch permission {
	case "profile:email":
		return a.Email
	case "profile:uid":
		return a.UID
	case "profile:display_name":
		return a.DisplayName
	case "profile:avatar":
		return a.ProfileImageURL
	}
	return ""
}
