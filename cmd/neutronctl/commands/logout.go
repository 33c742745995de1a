package commands

import (
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/spf13/cobra"
)

func newLogoutCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored token",
		Long: `Clear the token of the current context.

The cloud settings of the context are kept for easy re-login.

Examples:
  # Logout from current context
  neutronctl logout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rt.Store()
			if err != nil {
				return err
			}

			contextName := store.GetCurrentContextName()
			if contextName == "" {
				return fmt.Errorf("not logged in - no current context")
			}

			if err := store.ClearCurrentContext(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out from context: %s\n", contextName)
			return nil
		},
	}
}
