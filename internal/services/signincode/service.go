package signincode

import (
	"context"
	"strings"

	"handoff/internal/domain"
	"handoff/internal/flowerr"
)

// Service verifies sign-in codes against the auth server.
type Service struct {
	auth domain.AuthClient
}

// New constructs a Service backed by auth.
func New(auth domain.AuthClient) *Service {
	return &Service{auth: auth}
}

// Verify submits code for account's session and marks the session verified.
func (s *Service) Verify(ctx context.Context, account *domain.Account, code string) error {
	if !account.HasSessionToken() {
		return flowerr.New(flowerr.InvalidToken, "")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return flowerr.Missing("code")
	}
	if err := s.auth.VerifySessionCode(ctx, account.SessionToken, code); err != nil {
		return err
	}
	account.SessionVerified = true
	return nil
}
