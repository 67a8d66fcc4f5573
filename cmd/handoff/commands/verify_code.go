package commands

import (
	"github.com/spf13/cobra"
)

// verify-code <flow-id> <code>: verify the session with a sign-in code and
// finish the saved flow.
func verifyCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-code <flow-id> <code>",
		Short: "Verify the session with a sign-in code and finish the flow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := requirePassphrase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			_, err = appCtx.VerifyCode(cmd.Context(), pass, args[0], args[1], newJSONDispatcher(cmd.OutOrStdout()))
			return err
		},
	}
}
