package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"handoff/internal/services/relier"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home           string // state directory, e.g. $HOME/.handoff
	AuthServerURL  string
	OAuthServerURL string
	HTTPTimeout    time.Duration
	AssertionTTL   time.Duration
	FlowStateTTL   time.Duration
	LogLevel       string
	DBDSN          string // defaults to <Home>/flows.db

	ScopedKeysEnabled    bool
	ScopedKeysValidation map[string]relier.ScopeValidation
}

// configEnv holds raw env values.
type configEnv struct {
	Home                 string        `env:"HANDOFF_HOME"`
	AuthServerURL        string        `env:"HANDOFF_AUTH_SERVER_URL"         envDefault:"https://api.accounts.firefox.com"`
	OAuthServerURL       string        `env:"HANDOFF_OAUTH_SERVER_URL"        envDefault:"https://oauth.accounts.firefox.com"`
	HTTPTimeout          time.Duration `env:"HANDOFF_HTTP_TIMEOUT"            envDefault:"30s"`
	AssertionTTL         time.Duration `env:"HANDOFF_ASSERTION_TTL"           envDefault:"5m"`
	FlowStateTTL         time.Duration `env:"HANDOFF_FLOW_STATE_TTL"          envDefault:"24h"`
	LogLevel             string        `env:"HANDOFF_LOG_LEVEL"               envDefault:"info"`
	DBDSN                string        `env:"HANDOFF_DB_DSN"`
	ScopedKeysEnabled    bool          `env:"HANDOFF_SCOPED_KEYS_ENABLED"     envDefault:"true"`
	ScopedKeysValidation string        `env:"HANDOFF_SCOPED_KEYS_VALIDATION"`
}

// LoadConfig reads Config from the environment. Home falls back to
// ~/.handoff.
func LoadConfig() (Config, error) {
	var raw configEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	var validation map[string]relier.ScopeValidation
	if raw.ScopedKeysValidation != "" {
		if err := json.Unmarshal([]byte(raw.ScopedKeysValidation), &validation); err != nil {
			return Config{}, fmt.Errorf("parse HANDOFF_SCOPED_KEYS_VALIDATION: %w", err)
		}
	}

	home := raw.Home
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		home = filepath.Join(dir, ".handoff")
	}

	return Config{
		Home:                 home,
		AuthServerURL:        raw.AuthServerURL,
		OAuthServerURL:       raw.OAuthServerURL,
		HTTPTimeout:          raw.HTTPTimeout,
		AssertionTTL:         raw.AssertionTTL,
		FlowStateTTL:         raw.FlowStateTTL,
		LogLevel:             raw.LogLevel,
		DBDSN:                raw.DBDSN,
		ScopedKeysEnabled:    raw.ScopedKeysEnabled,
		ScopedKeysValidation: validation,
	}, nil
}

// dsn returns the flow-state database location.
func (c Config) dsn() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return filepath.Join(c.Home, "flows.db")
}
