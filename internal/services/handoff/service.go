package handoff

import (
	"context"
	"net/url"
	"regexp"

	"handoff/internal/domain"
	"handoff/internal/flowerr"
	"handoff/internal/logging"
	"handoff/internal/util/memzero"
)

var codeRe = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// Service implements domain.OAuthResultProvider.
type Service struct {
	assertions domain.AssertionGenerator
	oauth      domain.OAuthClient
	keys       domain.AccountKeysDeriver
	encrypter  domain.ScopedKeysEncrypter
	log        logging.Logger
}

// New constructs a handoff Service from its capabilities.
func New(
	assertions domain.AssertionGenerator,
	oauth domain.OAuthClient,
	keys domain.AccountKeysDeriver,
	encrypter domain.ScopedKeysEncrypter,
	log logging.Logger,
) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		assertions: assertions,
		oauth:      oauth,
		keys:       keys,
		encrypter:  encrypter,
		log:        log,
	}
}

// GetOAuthResult obtains an authorization code for account on behalf of
// relier and, when requested, an encrypted scoped key bundle.
func (s *Service) GetOAuthResult(
	ctx context.Context,
	account *domain.Account,
	relier domain.RelierParams,
) (domain.OAuthResult, error) {
	if !account.HasSessionToken() {
		return domain.OAuthResult{}, flowerr.New(flowerr.InvalidToken, "")
	}
	if err := requireParams(relier); err != nil {
		return domain.OAuthResult{}, err
	}
	log := s.log.With("client_id", relier.ClientID)

	assertion, err := s.assertions.Generate(ctx, account.SessionToken, relier.ClientID)
	if err != nil {
		return domain.OAuthResult{}, err
	}

	resp, err := s.oauth.GetCode(ctx, domain.CodeRequest{
		Assertion:           assertion,
		ClientID:            relier.ClientID,
		Scope:               relier.Scope,
		State:               relier.State,
		AccessType:          relier.AccessType,
		CodeChallenge:       relier.CodeChallenge,
		CodeChallengeMethod: relier.CodeChallengeMethod,
	})
	if err != nil {
		return domain.OAuthResult{}, err
	}

	result, err := validateCodeResponse(resp)
	if err != nil {
		log.Warn(ctx, "code grant rejected", "kind", flowerr.KindOf(err).String())
		return domain.OAuthResult{}, err
	}
	result.Action = relier.Action
	log.Debug(ctx, "code granted")

	if relier.KeysJWK != "" {
		bundle, err := s.provisionScopedKeys(ctx, account, relier, assertion)
		if err != nil {
			return domain.OAuthResult{}, err
		}
		result.Keys = bundle
	}
	return result, nil
}

// provisionScopedKeys returns "" with a nil error when no bundle can be
// produced for this account or scope.
//
// Steps:
//  1. Derive kA/kB for the account.
//  2. Fetch key metadata for the relier's key-bearing scopes.
//  3. Encrypt the derived scoped keys to keysJwk.
func (s *Service) provisionScopedKeys(
	ctx context.Context,
	account *domain.Account,
	relier domain.RelierParams,
	assertion string,
) (string, error) {
	keys, err := s.keys.AccountKeys(ctx, account)
	if err != nil {
		return "", err
	}
	if keys == nil {
		s.log.Debug(ctx, "no account keys, skipping scoped keys", "client_id", relier.ClientID)
		return "", nil
	}
	defer memzero.Zero(keys.KA, keys.KB)

	keyData, err := s.oauth.GetClientKeyData(ctx, domain.KeyDataRequest{
		Assertion: assertion,
		ClientID:  relier.ClientID,
		Scope:     relier.Scope,
	})
	if err != nil {
		return "", err
	}
	if len(keyData) == 0 {
		s.log.Debug(ctx, "no key-bearing scopes, skipping scoped keys", "client_id", relier.ClientID)
		return "", nil
	}

	return s.encrypter.CreateEncryptedBundle(keys, keyData, relier.KeysJWK)
}

func requireParams(relier domain.RelierParams) error {
	switch {
	case relier.ClientID == "":
		return flowerr.Missing("client_id")
	case relier.Scope == "":
		return flowerr.Missing("scope")
	case relier.State == "":
		return flowerr.Missing("state")
	}
	return nil
}

// validateCodeResponse extracts code and state from the redirect's query.
func validateCodeResponse(resp *domain.CodeResponse) (domain.OAuthResult, error) {
	if resp == nil {
		return domain.OAuthResult{}, flowerr.New(flowerr.InvalidResult, "")
	}
	if resp.Redirect == "" {
		return domain.OAuthResult{}, flowerr.New(flowerr.InvalidResultRedirect, "")
	}
	u, err := url.Parse(resp.Redirect)
	if err != nil {
		return domain.OAuthResult{}, flowerr.Wrap(flowerr.InvalidResultRedirect, "", err)
	}
	q := u.Query()
	code := q.Get("code")
	if !codeRe.MatchString(code) {
		return domain.OAuthResult{}, flowerr.New(flowerr.InvalidResultCode, "")
	}
	state := q.Get("state")
	if state == "" {
		return domain.OAuthResult{}, flowerr.New(flowerr.InvalidResultRedirect, "redirect has no state")
	}
	return domain.OAuthResult{
		Redirect: resp.Redirect,
		Code:     code,
		State:    state,
	}, nil
}

// Compile-time assertion that Service implements domain.OAuthResultProvider.
var _ domain.OAuthResultProvider = (*Service)(nil)
