package commands

import (
	"os"

	"github.com/spf13/cobra"

	"handoff/internal/app"
	"handoff/internal/logging"
)

var (
	home       string
	passphrase string
	appCtx     *app.App
	wire       *app.Wire

	authServer  string
	oauthServer string
	logLevel    string
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "handoff",
		Short:        "Hand a signed-in Firefox Account off to an OAuth relier",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if authServer != "" {
				cfg.AuthServerURL = authServer
			}
			if oauthServer != "" {
				cfg.OAuthServerURL = oauthServer
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			log := logging.New(os.Stderr, cfg.LogLevel)
			ctx := cmd.Context()
			w, err := app.NewWire(ctx, cfg, log)
			if err != nil {
				return err
			}
			wire = w
			appCtx = app.New(w)

			if n, err := appCtx.Prune(ctx, cfg.FlowStateTTL); err != nil {
				log.Warn(ctx, "flow state prune failed", "err", err)
			} else if n > 0 {
				log.Debug(ctx, "pruned stale flow states", "count", n)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.handoff)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored account (prompted if empty)")
	root.PersistentFlags().StringVar(&authServer, "auth-server", "", "auth server base URL")
	root.PersistentFlags().StringVar(&oauthServer, "oauth-server", "", "OAuth server base URL")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(loginCmd(), logoutCmd(), authorizeCmd(), resumeCmd(), verifyCodeCmd())
	return root
}
