package broker

import (
	"context"
	"fmt"
	"net/url"

	"handoff/internal/domain"
)

// RedirectDispatcher delivers the result by navigating to the redirect URL
// with the action appended.
type RedirectDispatcher struct{}

// SendOAuthResult returns a navigate behavior for result.
func (RedirectDispatcher) SendOAuthResult(_ context.Context, result domain.OAuthResult) (domain.Behavior, error) {
	u, err := url.Parse(result.Redirect)
	if err != nil {
		return domain.Behavior{}, fmt.Errorf("redirect: %w", err)
	}
	if result.Action != "" {
		q := u.Query()
		q.Set("action", result.Action.String())
		u.RawQuery = q.Encode()
	}
	return domain.NavigateBehavior(u.String()), nil
}

// Compile-time assertion that RedirectDispatcher implements domain.Dispatcher.
var _ domain.Dispatcher = RedirectDispatcher{}
