package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"handoff/internal/domain"
	"handoff/internal/services/relier"
)

var (
	ErrNoAccount         = errors.New("no account stored; run login first")
	ErrUnknownFlow       = errors.New("unknown or expired flow id")
	ErrPermissionsNeeded = errors.New("relier requests permissions not yet granted")
)

// Outcome is what an authorize, resume or verify-code run produced. Either
// Behavior is set, or the flow was checkpointed under FlowID.
type Outcome struct {
	Behavior    domain.Behavior
	Pending     bool
	FlowID      string
	ResumeToken string
}

// App runs OAuth flows for the stored account.
type App struct {
	w   *Wire
	now func() time.Time
}

func New(w *Wire) *App {
	return &App{w: w, now: time.Now}
}

// Authorize runs the sign-in flow described by query.
//
// Steps:
//  1. Load the account and build the relier from the query.
//  2. Refuse unseen permissions unless grant is set.
//  3. An unverified session is checkpointed and reported as pending.
//  4. Otherwise finish the flow through dispatcher and record the grant.
func (a *App) Authorize(
	ctx context.Context,
	passphrase string,
	query url.Values,
	grant bool,
	dispatcher domain.Dispatcher,
) (Outcome, error) {
	account, err := a.loadAccount(passphrase)
	if err != nil {
		return Outcome{}, err
	}

	params, err := a.w.Relier.Fetch(ctx, query)
	if err != nil {
		return Outcome{}, err
	}
	if relier.AccountNeedsPermissions(&account, params) && !grant {
		return Outcome{}, fmt.Errorf("%w: %v", ErrPermissionsNeeded, params.Permissions)
	}

	b := a.w.NewBroker(params, dispatcher)
	if !account.SessionVerified {
		st, err := b.PersistVerificationData(ctx, &account)
		if err != nil {
			return Outcome{}, err
		}
		token, err := relier.EncodeResumeToken(relier.PickResumeTokenInfo(params))
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Pending: true, FlowID: st.FlowID, ResumeToken: token}, nil
	}

	var behavior domain.Behavior
	if params.Action == domain.ActionSignUp {
		behavior, err = b.AfterSignUpConfirmationPoll(ctx, &account)
	} else {
		behavior, err = b.AfterSignIn(ctx, &account)
	}
	if err != nil {
		return Outcome{}, err
	}
	if err := a.recordGrant(passphrase, &account, params); err != nil {
		return Outcome{}, err
	}
	return Outcome{Behavior: behavior}, nil
}

// Resume finishes a checkpointed flow once the account was verified
// elsewhere. resumeToken may be empty.
func (a *App) Resume(
	ctx context.Context,
	passphrase string,
	flowID string,
	resumeToken string,
	dispatcher domain.Dispatcher,
) (Outcome, error) {
	account, err := a.loadAccount(passphrase)
	if err != nil {
		return Outcome{}, err
	}
	params, st, err := a.resumeRelier(ctx, flowID, resumeToken)
	if err != nil {
		return Outcome{}, err
	}

	b := a.w.NewBroker(params, dispatcher)
	var behavior domain.Behavior
	if st.Action == domain.ActionSignUp {
		behavior, err = b.AfterSignUpConfirmationPoll(ctx, &account)
	} else {
		behavior, err = b.AfterSignInConfirmationPoll(ctx, &account)
	}
	if err != nil {
		return Outcome{}, err
	}
	return a.finish(ctx, passphrase, flowID, &account, params, behavior)
}

// VerifyCode verifies a sign-in code for the stored session and finishes
// the checkpointed flow.
func (a *App) VerifyCode(
	ctx context.Context,
	passphrase string,
	flowID string,
	code string,
	dispatcher domain.Dispatcher,
) (Outcome, error) {
	account, err := a.loadAccount(passphrase)
	if err != nil {
		return Outcome{}, err
	}
	params, _, err := a.resumeRelier(ctx, flowID, "")
	if err != nil {
		return Outcome{}, err
	}

	if err := a.w.SignInCode.Verify(ctx, &account, code); err != nil {
		return Outcome{}, err
	}
	if err := a.w.Accounts.SaveAccount(passphrase, account); err != nil {
		return Outcome{}, err
	}

	behavior, err := a.w.NewBroker(params, dispatcher).AfterCompleteSignInCode(ctx, &account)
	if err != nil {
		return Outcome{}, err
	}
	return a.finish(ctx, passphrase, flowID, &account, params, behavior)
}

// Prune drops flow checkpoints older than maxAge.
func (a *App) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	return a.w.Flows.DeleteOlderThan(ctx, a.now().Add(-maxAge))
}

func (a *App) loadAccount(passphrase string) (domain.Account, error) {
	account, ok, err := a.w.Accounts.LoadAccount(passphrase)
	if err != nil {
		return domain.Account{}, err
	}
	if !ok {
		return domain.Account{}, ErrNoAccount
	}
	return account, nil
}

func (a *App) resumeRelier(ctx context.Context, flowID, resumeToken string) (domain.RelierParams, domain.FlowState, error) {
	st, ok, err := a.w.Flows.LoadFlowState(ctx, flowID)
	if err != nil {
		return domain.RelierParams{}, domain.FlowState{}, err
	}
	if !ok {
		return domain.RelierParams{}, domain.FlowState{}, ErrUnknownFlow
	}

	query := url.Values{}
	if resumeToken != "" {
		info, err := relier.DecodeResumeToken(resumeToken)
		if err != nil {
			return domain.RelierParams{}, domain.FlowState{}, err
		}
		setIf(query, "entrypoint", info.Entrypoint)
		setIf(query, "utm_campaign", info.UTMCampaign)
		setIf(query, "utm_content", info.UTMContent)
		setIf(query, "utm_medium", info.UTMMedium)
		setIf(query, "utm_source", info.UTMSource)
		setIf(query, "utm_term", info.UTMTerm)
		if info.ResetPasswordConfirm {
			query.Set("reset_password_confirm", "true")
		}
	}

	params, err := a.w.Relier.Resume(ctx, query, &st)
	if err != nil {
		return domain.RelierParams{}, domain.FlowState{}, err
	}
	return params, st, nil
}

// finish records the grant and drops the checkpoint of a completed flow.
func (a *App) finish(
	ctx context.Context,
	passphrase string,
	flowID string,
	account *domain.Account,
	params domain.RelierParams,
	behavior domain.Behavior,
) (Outcome, error) {
	if err := a.recordGrant(passphrase, account, params); err != nil {
		return Outcome{}, err
	}
	if err := a.w.Flows.DeleteFlowState(ctx, flowID); err != nil {
		a.w.Log.Warn(ctx, "flow state not deleted", "flow_id", flowID, "err", err)
	}
	return Outcome{Behavior: behavior}, nil
}

// recordGrant stores the permissions the relier received.
func (a *App) recordGrant(passphrase string, account *domain.Account, params domain.RelierParams) error {
	if len(params.Permissions) == 0 || account.HasSeenPermissions(params.ClientID, params.Permissions) {
		return nil
	}
	account.GrantPermissions(params.ClientID, params.Permissions)
	return a.w.Accounts.SaveAccount(passphrase, *account)
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
