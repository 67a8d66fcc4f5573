package commands

import (
	"github.com/spf13/cobra"
)

// resume <flow-id>: finish a flow after the account was verified elsewhere.
func resumeCmd() *cobra.Command {
	var resumeToken string
	cmd := &cobra.Command{
		Use:   "resume <flow-id>",
		Short: "Finish a saved flow once the account is verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := requirePassphrase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			_, err = appCtx.Resume(cmd.Context(), pass, args[0], resumeToken, newJSONDispatcher(cmd.OutOrStdout()))
			return err
		},
	}
	cmd.Flags().StringVar(&resumeToken, "resume-token", "", "resume token printed by authorize")
	return cmd
}
