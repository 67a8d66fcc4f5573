package broker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"handoff/internal/domain"
	"handoff/internal/logging"
)

var (
	ErrSubmitInProgress   = errors.New("submit already in progress")
	ErrDispatcherRequired = errors.New("sendOAuthResultToRelier must be overridden")
)

// Capability names.
const (
	CapabilitySignUp                            = "signup"
	CapabilityHandleSignedInNotification        = "handleSignedInNotification"
	CapabilityEmailVerificationMarketingSnippet = "emailVerificationMarketingSnippet"
)

var defaultCapabilities = map[string]bool{
	CapabilitySignUp:                            true,
	CapabilityHandleSignedInNotification:        false,
	CapabilityEmailVerificationMarketingSnippet: true,
}

// Broker is the OAuth authentication broker for one relier.
type Broker struct {
	results    domain.OAuthResultProvider
	flows      domain.FlowStateStore
	dispatcher domain.Dispatcher
	relier     domain.RelierParams
	log        logging.Logger

	submitting atomic.Bool
	now        func() time.Time
}

// New constructs a Broker. A nil dispatcher makes every finish fail with
// ErrDispatcherRequired.
func New(
	results domain.OAuthResultProvider,
	flows domain.FlowStateStore,
	dispatcher domain.Dispatcher,
	relier domain.RelierParams,
	log logging.Logger,
) *Broker {
	if log == nil {
		log = logging.Discard()
	}
	return &Broker{
		results:    results,
		flows:      flows,
		dispatcher: dispatcher,
		relier:     relier,
		log:        log.With("service", relier.Service(), "context", relier.Context()),
		now:        time.Now,
	}
}

// HasCapability reports whether the broker supports the named capability.
func (b *Broker) HasCapability(name string) bool {
	return defaultCapabilities[name]
}

// AfterSignIn finishes the flow once the user signed in.
func (b *Broker) AfterSignIn(ctx context.Context, account *domain.Account) (domain.Behavior, error) {
	return b.finishOAuthFlow(ctx, account, domain.ActionSignIn)
}

// AfterSignInConfirmationPoll finishes the flow once a sign-in was confirmed
// elsewhere. The caller must not transition afterwards.
func (b *Broker) AfterSignInConfirmationPoll(ctx context.Context, account *domain.Account) (domain.Behavior, error) {
	if _, err := b.finishOAuthFlow(ctx, account, domain.ActionSignIn); err != nil {
		return domain.Behavior{}, err
	}
	return domain.HaltBehavior(), nil
}

// AfterSignUpConfirmationPoll finishes the flow once a sign-up was verified.
func (b *Broker) AfterSignUpConfirmationPoll(ctx context.Context, account *domain.Account) (domain.Behavior, error) {
	return b.finishOAuthFlow(ctx, account, domain.ActionSignUp)
}

// AfterResetPasswordConfirmationPoll finishes the flow once a password reset
// was confirmed.
func (b *Broker) AfterResetPasswordConfirmationPoll(ctx context.Context, account *domain.Account) (domain.Behavior, error) {
	return b.finishOAuthFlow(ctx, account, domain.ActionSignIn)
}

// AfterCompleteSignInCode finishes the flow once a sign-in code was verified.
func (b *Broker) AfterCompleteSignInCode(ctx context.Context, account *domain.Account) (domain.Behavior, error) {
	return b.finishOAuthFlow(ctx, account, domain.ActionSignIn)
}

// PersistVerificationData checkpoints the relier so the flow can resume
// after verification.
func (b *Broker) PersistVerificationData(ctx context.Context, account *domain.Account) (domain.FlowState, error) {
	state := domain.FlowStateFromRelier(uuid.NewString(), b.relier, b.now())
	if err := b.flows.SaveFlowState(ctx, state); err != nil {
		return domain.FlowState{}, err
	}
	uid := ""
	if account != nil {
		uid = account.UID
	}
	b.log.Info(ctx, "flow state persisted", "flow_id", state.FlowID, "uid", uid)
	return state, nil
}

// TransformLink prefixes link with the OAuth route.
func (b *Broker) TransformLink(link string) string {
	return "/oauth/" + strings.TrimLeft(link, "/")
}

// finishOAuthFlow obtains the OAuth result, stamps action on it and sends it
// to the relier.
//
// Steps:
//  1. Refuse a second concurrent finish.
//  2. Run the handoff sequence for the broker's relier.
//  3. Dispatch the result.
func (b *Broker) finishOAuthFlow(ctx context.Context, account *domain.Account, action domain.Action) (domain.Behavior, error) {
	if !b.submitting.CompareAndSwap(false, true) {
		return domain.Behavior{}, ErrSubmitInProgress
	}
	defer b.submitting.Store(false)

	result, err := b.results.GetOAuthResult(ctx, account, b.relier)
	if err != nil {
		b.log.Warn(ctx, "oauth result failed", "action", action, "err", err)
		return domain.Behavior{}, err
	}
	result.Action = action
	return b.sendOAuthResultToRelier(ctx, result)
}

func (b *Broker) sendOAuthResultToRelier(ctx context.Context, result domain.OAuthResult) (domain.Behavior, error) {
	if b.dispatcher == nil {
		return domain.Behavior{}, ErrDispatcherRequired
	}
	behavior, err := b.dispatcher.SendOAuthResult(ctx, result)
	if err != nil {
		return domain.Behavior{}, err
	}
	b.log.Info(ctx, "oauth result sent", "action", result.Action, "keys", result.Keys != "")
	return behavior, nil
}
