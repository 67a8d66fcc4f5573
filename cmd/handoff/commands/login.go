package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"handoff/internal/domain"
)

// login: store the signed-in account under the passphrase.
func loginCmd() *cobra.Command {
	var (
		uid      string
		email    string
		verified bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a signed-in account (session token, key fetch token, unwrapBKey)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.ErrOrStderr()
			pass, err := requirePassphrase(out)
			if err != nil {
				return err
			}
			sessionToken, err := promptSecret(out, "Session token")
			if err != nil {
				return err
			}
			if sessionToken == "" {
				return fmt.Errorf("session token required")
			}
			keyFetchToken, err := promptSecret(out, "Key fetch token (empty to skip)")
			if err != nil {
				return err
			}
			unwrapBKey, err := promptSecret(out, "unwrapBKey (empty to skip)")
			if err != nil {
				return err
			}

			account := domain.Account{
				UID:             uid,
				Email:           email,
				SessionToken:    sessionToken,
				SessionVerified: verified,
				KeyFetchToken:   keyFetchToken,
				UnwrapBKey:      unwrapBKey,
			}
			if err := wire.Accounts.SaveAccount(pass, account); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account stored.")
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "account uid")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().BoolVar(&verified, "verified", false, "the session is already verified")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// logout: forget the stored account.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the stored account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Accounts.DeleteAccount(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted.")
			return nil
		},
	}
}
