package relier

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"handoff/internal/domain"
	"handoff/internal/flowerr"
	"handoff/internal/logging"
)

var hexRe = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// Config carries the scoped-keys policy.
type Config struct {
	ScopedKeysEnabled    bool
	ScopedKeysValidation map[string]ScopeValidation
}

// Service builds RelierParams from query strings and client registrations.
type Service struct {
	oauth domain.OAuthClient
	cfg   Config
	log   logging.Logger
}

// New constructs a relier Service.
func New(oauth domain.OAuthClient, cfg Config, log logging.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{oauth: oauth, cfg: cfg, log: log}
}

// Fetch validates the sign-in/sign-up query and completes it with the
// client's registration.
func (s *Service) Fetch(ctx context.Context, query url.Values) (domain.RelierParams, error) {
	var p domain.RelierParams

	// service is derived from client_id in this flow.
	if query.Has("service") {
		return p, flowerr.Invalid("service")
	}

	clientID, err := required(query, "client_id")
	if err != nil {
		return p, err
	}
	p.ClientID = clientID
	scope, err := required(query, "scope")
	if err != nil {
		return p, err
	}
	p.Scope = scope

	p.State = strings.TrimSpace(query.Get("state"))
	p.KeysJWK = strings.TrimSpace(query.Get("keys_jwk"))

	action, err := optional(query, "action", func(v string) bool { return domain.Action(v).Valid() })
	if err != nil {
		return p, err
	}
	p.Action = domain.Action(action)
	if p.AccessType, err = optional(query, "access_type", oneOf("offline", "online")); err != nil {
		return p, err
	}
	if p.Prompt, err = optional(query, "prompt", oneOf("consent")); err != nil {
		return p, err
	}
	if p.RedirectTo, err = optional(query, "redirectTo", nonBlank); err != nil {
		return p, err
	}
	// The registered redirect_uri is authoritative; the query value is only
	// checked for shape.
	if _, err := optional(query, "redirect_uri", isURL); err != nil {
		return p, err
	}
	if err := pkceParams(query, &p); err != nil {
		return p, err
	}
	resumeParams(query, &p)

	return s.complete(ctx, p)
}

// Resume rebuilds the relier for the verification flow. saved is the
// flow-state checkpoint of this browser, or nil when verifying elsewhere.
func (s *Service) Resume(ctx context.Context, query url.Values, saved *domain.FlowState) (domain.RelierParams, error) {
	var p domain.RelierParams
	if saved != nil {
		p = domain.RelierParams{
			ClientID:            saved.ClientID,
			Scope:               saved.Scope,
			State:               saved.State,
			Action:              saved.Action,
			AccessType:          saved.AccessType,
			KeysJWK:             saved.KeysJWK,
			CodeChallenge:       saved.CodeChallenge,
			CodeChallengeMethod: saved.CodeChallengeMethod,
		}
	} else {
		p.ClientID = strings.TrimSpace(query.Get("service"))
		p.Scope = query.Get("scope")
	}
	if p.ClientID == "" {
		return p, flowerr.Missing("client_id")
	}
	resumeParams(query, &p)
	return s.complete(ctx, p)
}

// complete validates client_id and scope, then applies the registration
// returned by the OAuth server.
func (s *Service) complete(ctx context.Context, p domain.RelierParams) (domain.RelierParams, error) {
	if !hexRe.MatchString(p.ClientID) {
		return p, flowerr.Invalid("client_id")
	}
	if strings.TrimSpace(p.Scope) == "" {
		return p, flowerr.Invalid("scope")
	}

	info, err := s.oauth.GetClientInfo(ctx, p.ClientID)
	if err != nil {
		return p, clientInfoError(err)
	}
	if err := applyClientInfo(&p, info); err != nil {
		return p, err
	}

	scopes := splitScope(p.Scope)
	switch {
	case !p.Trusted:
		scopes = filterUntrusted(scopes)
	case p.WantsConsent():
		scopes = expandTrusted(scopes)
	}
	if len(scopes) == 0 {
		return p, flowerr.Invalid("scope")
	}
	p.Scope = strings.Join(scopes, " ")
	p.Permissions = scopes

	if p.KeysJWK != "" {
		wants, err := s.WantsKeys(p)
		if err != nil {
			return p, err
		}
		if !wants {
			s.log.Debug(ctx, "scoped keys not enabled, dropping keys_jwk", "client_id", p.ClientID)
			p.KeysJWK = ""
		}
	}

	s.log.Debug(ctx, "relier fetched", "client_id", p.ClientID, "trusted", p.Trusted, "scope", p.Scope)
	return p, nil
}

func applyClientInfo(p *domain.RelierParams, info domain.ClientInfo) error {
	if info.Name == nil {
		return flowerr.Missing("name")
	}
	if p.ServiceName = strings.TrimSpace(*info.Name); p.ServiceName == "" {
		return flowerr.Invalid("name")
	}
	if info.RedirectURI == nil {
		return flowerr.Missing("redirect_uri")
	}
	if p.RedirectURI = strings.TrimSpace(*info.RedirectURI); p.RedirectURI == "" {
		return flowerr.Invalid("redirect_uri")
	}
	if p.ImageURI = strings.TrimSpace(info.ImageURI); p.ImageURI != "" && !isURL(p.ImageURI) {
		return flowerr.Invalid("image_uri")
	}
	p.Trusted = bool(info.Trusted)
	return nil
}

// paramRejecter is satisfied by server errors that name a rejected parameter.
type paramRejecter interface {
	RejectsParam(param string) bool
}

func clientInfoError(err error) error {
	var rejecter paramRejecter
	if errors.As(err, &rejecter) && rejecter.RejectsParam("client_id") {
		return flowerr.Wrap(flowerr.UnknownClient, "", err)
	}
	if errors.Is(err, domain.ErrNotBoolean) {
		return &flowerr.Error{Kind: flowerr.InvalidParameter, Param: "trusted", Cause: err}
	}
	return err
}

func pkceParams(query url.Values, p *domain.RelierParams) error {
	var err error
	if p.CodeChallenge, err = optional(query, "code_challenge", codeChallengeRe.MatchString); err != nil {
		return err
	}
	if p.CodeChallengeMethod, err = optional(query, "code_challenge_method", oneOf(CodeChallengeMethodS256)); err != nil {
		return err
	}
	switch {
	case p.CodeChallenge != "" && p.CodeChallengeMethod == "":
		return flowerr.Missing("code_challenge_method")
	case p.CodeChallenge == "" && p.CodeChallengeMethod != "":
		return flowerr.Missing("code_challenge")
	}
	return nil
}

func resumeParams(query url.Values, p *domain.RelierParams) {
	p.Entrypoint = strings.TrimSpace(query.Get("entrypoint"))
	p.ResetPasswordConfirm = query.Get("reset_password_confirm") == "true"
	p.UTMCampaign = strings.TrimSpace(query.Get("utm_campaign"))
	p.UTMContent = strings.TrimSpace(query.Get("utm_content"))
	p.UTMMedium = strings.TrimSpace(query.Get("utm_medium"))
	p.UTMSource = strings.TrimSpace(query.Get("utm_source"))
	p.UTMTerm = strings.TrimSpace(query.Get("utm_term"))
}

func required(query url.Values, name string) (string, error) {
	if !query.Has(name) {
		return "", flowerr.Missing(name)
	}
	return strings.TrimSpace(query.Get(name)), nil
}

// optional returns "" for an absent parameter and fails when a present one
// is blank or rejected by valid.
func optional(query url.Values, name string, valid func(string) bool) (string, error) {
	if !query.Has(name) {
		return "", nil
	}
	v := strings.TrimSpace(query.Get(name))
	if v == "" || !valid(v) {
		return "", flowerr.Invalid(name)
	}
	return v, nil
}

func oneOf(allowed ...string) func(string) bool {
	return func(v string) bool {
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}
}

func nonBlank(v string) bool { return v != "" }

func isURL(v string) bool {
	u, err := url.Parse(v)
	return err == nil && u.Scheme != "" && u.Host != ""
}
