package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"handoff/internal/assertion"
	"handoff/internal/domain"
	"handoff/internal/fxaclient"
	"handoff/internal/logging"
	"handoff/internal/scopedkeys"
	"handoff/internal/services/accountkeys"
	"handoff/internal/services/broker"
	"handoff/internal/services/handoff"
	"handoff/internal/services/relier"
	"handoff/internal/services/signincode"
	"handoff/internal/store"
	"handoff/internal/store/sqlite"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Accounts   domain.AccountStore
	Flows      *sqlite.FlowStateRepository
	Relier     *relier.Service
	Handoff    *handoff.Service
	SignInCode *signincode.Service
	OAuth      domain.OAuthClient
	Auth       domain.AuthClient
	HTTP       *http.Client
	Log        logging.Logger

	db *sql.DB
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config, log logging.Logger) (*Wire, error) {
	if log == nil {
		log = logging.Discard()
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	// Stores
	accounts := store.NewAccountFileStore(cfg.Home)
	db, err := sqlite.Open(ctx, cfg.dsn())
	if err != nil {
		return nil, err
	}
	flows := sqlite.NewFlowStateRepository(db)

	// Remote clients share one HTTP client
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	oauthClient := fxaclient.NewOAuth(cfg.OAuthServerURL, httpClient)
	authClient := fxaclient.NewAuth(cfg.AuthServerURL, httpClient)

	// High-level services
	assertions := assertion.New(authClient, cfg.OAuthServerURL, cfg.AssertionTTL)
	handoffSvc := handoff.New(assertions, oauthClient, accountkeys.New(authClient), scopedkeys.New(), log)
	relierSvc := relier.New(oauthClient, relier.Config{
		ScopedKeysEnabled:    cfg.ScopedKeysEnabled,
		ScopedKeysValidation: cfg.ScopedKeysValidation,
	}, log)

	return &Wire{
		Accounts:   accounts,
		Flows:      flows,
		Relier:     relierSvc,
		Handoff:    handoffSvc,
		SignInCode: signincode.New(authClient),
		OAuth:      oauthClient,
		Auth:       authClient,
		HTTP:       httpClient,
		Log:        log,
		db:         db,
	}, nil
}

// NewBroker builds a broker for one relier, delivering through dispatcher.
func (w *Wire) NewBroker(params domain.RelierParams, dispatcher domain.Dispatcher) *broker.Broker {
	return broker.New(w.Handoff, w.Flows, dispatcher, params, w.Log)
}

// Close releases the flow-state database.
func (w *Wire) Close() error {
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}
