package commands

import (
	"context"
	"encoding/json"
	"io"

	"handoff/internal/domain"
	"handoff/internal/services/broker"
)

// jsonDispatcher prints the OAuth result as JSON, then behaves like a
// redirect.
type jsonDispatcher struct {
	w io.Writer
}

func newJSONDispatcher(w io.Writer) *jsonDispatcher { return &jsonDispatcher{w: w} }

func (d *jsonDispatcher) SendOAuthResult(ctx context.Context, result domain.OAuthResult) (domain.Behavior, error) {
	behavior, err := broker.RedirectDispatcher{}.SendOAuthResult(ctx, result)
	if err != nil {
		return domain.Behavior{}, err
	}
	enc := json.NewEncoder(d.w)
	enc.SetIndent("", "  ")
	out := struct {
		domain.OAuthResult
		URL string `json:"url"`
	}{OAuthResult: result, URL: behavior.URL}
	if err := enc.Encode(out); err != nil {
		return domain.Behavior{}, err
	}
	return behavior, nil
}

// Compile-time assertion that jsonDispatcher implements domain.Dispatcher.
var _ domain.Dispatcher = (*jsonDispatcher)(nil)
