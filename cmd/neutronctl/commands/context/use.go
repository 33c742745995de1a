package context

import (
	"errors"
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/spf13/cobra"
)

func newUseCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch to a different context",
		Long: `Switch to a different context.

This changes the active context used for subsequent commands.

Examples:
  # Switch to context named "production"
  neutronctl context use production`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contextName := args[0]

			store, err := rt.Store()
			if err != nil {
				return err
			}

			if err := store.UseContext(contextName); err != nil {
				if errors.Is(err, credentials.ErrContextNotFound) {
					return fmt.Errorf("context '%s' not found\n\n"+
						"List available contexts:\n"+
						"  neutronctl context list", contextName)
				}
				return fmt.Errorf("failed to switch context: %w", err)
			}

			printer, err := rt.Printer(cmd)
			if err != nil {
				return err
			}
			printer.Printf("Switched to context: %s\n", contextName)
			if ctx, err := store.GetContext(contextName); err == nil && !ctx.HasValidToken() {
				printer.Warning(fmt.Sprintf("context '%s' has no valid token: run 'neutronctl login' or set OS_PASSWORD", contextName))
			}
			return nil
		},
	}
}
