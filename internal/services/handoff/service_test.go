package handoff_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handoff/internal/domain"
	"handoff/internal/flowerr"
	"handoff/internal/logging"
	"handoff/internal/services/handoff"
)

const sampleScope = "https://identity.mozilla.org/apps/sample-scope-can-scope-key"

var (
	validCode     = strings.Repeat("00a1", 16)
	validRedirect = "https://127.0.0.1:8080?state=state&code=" + validCode
)

type fakeAssertions struct {
	calls         int
	token, client string
	err           error
}

func (f *fakeAssertions) Generate(_ context.Context, token, client string) (string, error) {
	f.calls++
	f.token, f.client = token, client
	if f.err != nil {
		return "", f.err
	}
	return "assertion", nil
}

type fakeOAuth struct {
	domain.OAuthClient

	codeCalls int
	codeReq   domain.CodeRequest
	codeResp  *domain.CodeResponse
	codeErr   error

	keyReq  *domain.KeyDataRequest
	keyData map[string]domain.ScopedKeyData
	keyErr  error
}

func (f *fakeOAuth) GetCode(_ context.Context, req domain.CodeRequest) (*domain.CodeResponse, error) {
	f.codeCalls++
	f.codeReq = req
	return f.codeResp, f.codeErr
}

func (f *fakeOAuth) GetClientKeyData(_ context.Context, req domain.KeyDataRequest) (map[string]domain.ScopedKeyData, error) {
	f.keyReq = &req
	return f.keyData, f.keyErr
}

type fakeKeys struct {
	keys *domain.AccountKeys
	err  error
}

func (f *fakeKeys) AccountKeys(context.Context, *domain.Account) (*domain.AccountKeys, error) {
	return f.keys, f.err
}

type fakeEncrypter struct {
	calls int
	jwk   string
	kB    string
	err   error
}

func (f *fakeEncrypter) CreateEncryptedBundle(keys *domain.AccountKeys, _ map[string]domain.ScopedKeyData, jwk string) (string, error) {
	f.calls++
	f.jwk, f.kB = jwk, string(keys.KB)
	if f.err != nil {
		return "", f.err
	}
	return "bundle", nil
}

type fixture struct {
	assertions *fakeAssertions
	oauth      *fakeOAuth
	keys       *fakeKeys
	encrypter  *fakeEncrypter
	svc        *handoff.Service
}

func newFixture() *fixture {
	f := &fixture{
		assertions: &fakeAssertions{},
		oauth:      &fakeOAuth{codeResp: &domain.CodeResponse{Redirect: validRedirect}},
		keys:       &fakeKeys{keys: &domain.AccountKeys{KA: []byte("foo"), KB: []byte("bar")}},
		encrypter:  &fakeEncrypter{},
	}
	f.svc = handoff.New(f.assertions, f.oauth, f.keys, f.encrypter, nil)
	return f
}

func account() *domain.Account {
	return &domain.Account{SessionToken: "abc123", UnwrapBKey: "12", KeyFetchToken: "kft"}
}

func relier() domain.RelierParams {
	return domain.RelierParams{Action: "action", ClientID: "clientId", Scope: "scope", State: "state"}
}

func TestGetOAuthResult_ValidRedirect(t *testing.T) {
	f := newFixture()

	got, err := f.svc.GetOAuthResult(context.Background(), account(), relier())
	require.NoError(t, err)
	assert.Equal(t, domain.OAuthResult{
		Action:   "action",
		Code:     validCode,
		Redirect: validRedirect,
		State:    "state",
	}, got)

	assert.Equal(t, "abc123", f.assertions.token)
	assert.Equal(t, "clientId", f.assertions.client)
	assert.Equal(t, domain.CodeRequest{
		Assertion: "assertion",
		ClientID:  "clientId",
		Scope:     "scope",
		State:     "state",
	}, f.oauth.codeReq)
	assert.Nil(t, f.oauth.keyReq, "no key provisioning without keys_jwk")
}

func TestGetOAuthResult_ForwardsPKCEAndAccessType(t *testing.T) {
	f := newFixture()
	r := relier()
	r.AccessType = "offline"
	r.CodeChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
	r.CodeChallengeMethod = "S256"

	_, err := f.svc.GetOAuthResult(context.Background(), account(), r)
	require.NoError(t, err)
	assert.Equal(t, "offline", f.oauth.codeReq.AccessType)
	assert.Equal(t, r.CodeChallenge, f.oauth.codeReq.CodeChallenge)
	assert.Equal(t, "S256", f.oauth.codeReq.CodeChallengeMethod)
}

func TestGetOAuthResult_ResponseValidation(t *testing.T) {
	cases := []struct {
		name string
		resp *domain.CodeResponse
		kind flowerr.Kind
	}{
		{"no response", nil, flowerr.InvalidResult},
		{"no redirect", &domain.CodeResponse{}, flowerr.InvalidResultRedirect},
		{"non-hex code", &domain.CodeResponse{Redirect: "https://127.0.0.1:8080?code=code&state=state"}, flowerr.InvalidResultCode},
		{"no code", &domain.CodeResponse{Redirect: "https://127.0.0.1:8080?state=state"}, flowerr.InvalidResultCode},
		{"65-char code", &domain.CodeResponse{Redirect: "https://127.0.0.1:8080?state=state&code=" + validCode + "a"}, flowerr.InvalidResultCode},
		{"short code", &domain.CodeResponse{Redirect: "https://127.0.0.1:8080?state=state&code=" + validCode[1:]}, flowerr.InvalidResultCode},
		{"no state", &domain.CodeResponse{Redirect: "https://127.0.0.1:8080?code=" + validCode}, flowerr.InvalidResultRedirect},
		{"unparsable", &domain.CodeResponse{Redirect: "http://[::1"}, flowerr.InvalidResultRedirect},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.oauth.codeResp = tc.resp

			_, err := f.svc.GetOAuthResult(context.Background(), account(), relier())
			require.Error(t, err)
			assert.Equal(t, tc.kind, flowerr.KindOf(err))
		})
	}
}

func TestGetOAuthResult_ParsesCodeAndStateFromRedirect(t *testing.T) {
	f := newFixture()
	redirect := "https://relier.example/cb?code=" + validCode + "&state=server-state"
	f.oauth.codeResp = &domain.CodeResponse{Redirect: redirect, Code: "ignored", State: "ignored"}

	got, err := f.svc.GetOAuthResult(context.Background(), account(), relier())
	require.NoError(t, err)
	assert.Equal(t, validCode, got.Code)
	assert.Equal(t, "server-state", got.State)
	assert.Equal(t, redirect, got.Redirect)
}

func TestGetOAuthResult_LogsKindName(t *testing.T) {
	var buf bytes.Buffer
	f := newFixture()
	f.oauth.codeResp = &domain.CodeResponse{Redirect: "https://127.0.0.1:8080?state=state&code=code"}
	svc := handoff.New(f.assertions, f.oauth, f.keys, f.encrypter, logging.New(&buf, "warn"))

	_, err := svc.GetOAuthResult(context.Background(), account(), relier())
	require.Error(t, err)
	assert.Contains(t, buf.String(), "kind=INVALID_RESULT_CODE")
}

func TestGetOAuthResult_AcceptsAnyCaseHexCode(t *testing.T) {
	for _, code := range []string{strings.ToUpper(validCode), strings.Repeat("00A1", 16), strings.Repeat("aB", 32)} {
		t.Run(code[:8], func(t *testing.T) {
			f := newFixture()
			f.oauth.codeResp = &domain.CodeResponse{Redirect: "https://127.0.0.1:8080?state=state&code=" + code}

			got, err := f.svc.GetOAuthResult(context.Background(), account(), relier())
			require.NoError(t, err)
			assert.Equal(t, code, got.Code)
		})
	}
}

func TestGetOAuthResult_InvalidToken(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetOAuthResult(context.Background(), &domain.Account{}, relier())
	assert.True(t, flowerr.IsKind(err, flowerr.InvalidToken))

	_, err = f.svc.GetOAuthResult(context.Background(), nil, relier())
	assert.True(t, flowerr.IsKind(err, flowerr.InvalidToken))
	assert.Zero(t, f.assertions.calls)
}

func TestGetOAuthResult_MissingRelierParams(t *testing.T) {
	for _, param := range []string{"client_id", "scope", "state"} {
		f := newFixture()
		r := relier()
		switch param {
		case "client_id":
			r.ClientID = ""
		case "scope":
			r.Scope = ""
		case "state":
			r.State = ""
		}
		_, err := f.svc.GetOAuthResult(context.Background(), account(), r)
		assert.ErrorIs(t, err, flowerr.Missing(param))
	}
}

func TestGetOAuthResult_PassesThroughAssertionError(t *testing.T) {
	f := newFixture()
	boom := errors.New("uh oh")
	f.assertions.err = boom

	_, err := f.svc.GetOAuthResult(context.Background(), account(), relier())
	assert.Same(t, boom, err)
	assert.Zero(t, f.oauth.codeCalls)
}

func TestGetOAuthResult_NoRetryOnCodeError(t *testing.T) {
	f := newFixture()
	boom := errors.New("503")
	f.oauth.codeErr = boom

	_, err := f.svc.GetOAuthResult(context.Background(), account(), relier())
	assert.Same(t, boom, err)
	assert.Equal(t, 1, f.oauth.codeCalls)
	assert.Equal(t, 1, f.assertions.calls)
}

func TestGetOAuthResult_ProvisionsScopedKeys(t *testing.T) {
	f := newFixture()
	f.oauth.keyData = map[string]domain.ScopedKeyData{
		sampleScope: {Identifier: sampleScope, KeyRotationSecret: strings.Repeat("0", 64), KeyRotationTimestamp: 1506970363512},
	}
	r := relier()
	r.KeysJWK = "jwk"

	got, err := f.svc.GetOAuthResult(context.Background(), account(), r)
	require.NoError(t, err)
	assert.Equal(t, "bundle", got.Keys)
	assert.Equal(t, "jwk", f.encrypter.jwk)
	assert.Equal(t, "bar", f.encrypter.kB)
	require.NotNil(t, f.oauth.keyReq)
	assert.Equal(t, domain.KeyDataRequest{Assertion: "assertion", ClientID: "clientId", Scope: "scope"}, *f.oauth.keyReq)
	assert.Equal(t, 1, f.assertions.calls, "key data reuses the code grant assertion")
}

func TestGetOAuthResult_NoBundleWithoutKeysOrKeyData(t *testing.T) {
	r := relier()
	r.KeysJWK = "jwk"

	f := newFixture()
	f.keys.keys = nil
	got, err := f.svc.GetOAuthResult(context.Background(), account(), r)
	require.NoError(t, err)
	assert.Empty(t, got.Keys)
	assert.Nil(t, f.oauth.keyReq)
	assert.Equal(t, validCode, got.Code)

	f = newFixture()
	f.oauth.keyData = map[string]domain.ScopedKeyData{}
	got, err = f.svc.GetOAuthResult(context.Background(), account(), r)
	require.NoError(t, err)
	assert.Empty(t, got.Keys)
	assert.Zero(t, f.encrypter.calls)
}

func TestGetOAuthResult_ProvisioningErrorsPropagate(t *testing.T) {
	r := relier()
	r.KeysJWK = "jwk"
	boom := errors.New("boom")

	f := newFixture()
	f.keys.err = boom
	_, err := f.svc.GetOAuthResult(context.Background(), account(), r)
	assert.ErrorIs(t, err, boom)

	f = newFixture()
	f.oauth.keyErr = boom
	_, err = f.svc.GetOAuthResult(context.Background(), account(), r)
	assert.ErrorIs(t, err, boom)

	f = newFixture()
	f.oauth.keyData = map[string]domain.ScopedKeyData{sampleScope: {}}
	f.encrypter.err = boom
	_, err = f.svc.GetOAuthResult(context.Background(), account(), r)
	assert.ErrorIs(t, err, boom)
}

func TestGetOAuthResult_WipesAccountKeys(t *testing.T) {
	f := newFixture()
	keys := &domain.AccountKeys{KA: []byte("foo"), KB: []byte("bar")}
	f.keys.keys = keys
	f.oauth.keyData = map[string]domain.ScopedKeyData{sampleScope: {}}
	r := relier()
	r.KeysJWK = "jwk"

	_, err := f.svc.GetOAuthResult(context.Background(), account(), r)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, keys.KA)
	assert.Equal(t, []byte{0, 0, 0}, keys.KB)
}
