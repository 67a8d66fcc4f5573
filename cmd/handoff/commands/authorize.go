package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"handoff/internal/app"
	"handoff/internal/services/relier"
)

// authorize <query>: run the OAuth sign-in flow for a relier.
func authorizeCmd() *cobra.Command {
	var (
		grant bool
		pkce  bool
	)
	cmd := &cobra.Command{
		Use:   "authorize <query>",
		Short: "Obtain an authorization code (and scoped keys) for a relier",
		Long: "Runs the OAuth handoff for the query string of an /authorization URL,\n" +
			"e.g. 'client_id=dcdb5ae7add825d2&scope=profile&state=xyz'.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(args[0])
			if err != nil {
				return err
			}
			if pkce && !query.Has("code_challenge") {
				verifier, err := relier.GenerateCodeVerifier()
				if err != nil {
					return err
				}
				query.Set("code_challenge", relier.ComputeS256Challenge(verifier))
				query.Set("code_challenge_method", relier.CodeChallengeMethodS256)
				fmt.Fprintf(cmd.ErrOrStderr(), "PKCE code verifier: %s\n", verifier)
			}

			pass, err := requirePassphrase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out, err := appCtx.Authorize(cmd.Context(), pass, query, grant, newJSONDispatcher(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return printPending(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&grant, "grant", false, "grant the requested permissions")
	cmd.Flags().BoolVar(&pkce, "pkce", false, "generate a PKCE S256 challenge")
	return cmd
}

// parseQuery accepts a bare query string or a full URL.
func parseQuery(s string) (url.Values, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[i+1:]
	}
	q, err := url.ParseQuery(s)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	return q, nil
}

func printPending(cmd *cobra.Command, out app.Outcome) error {
	if !out.Pending {
		return nil
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Session not verified; flow saved.")
	fmt.Fprintf(w, "Flow ID:      %s\n", out.FlowID)
	fmt.Fprintf(w, "Resume token: %s\n", out.ResumeToken)
	fmt.Fprintln(w, "Run 'handoff verify-code <flow-id> <code>' or 'handoff resume <flow-id>' once verified.")
	return nil
}
