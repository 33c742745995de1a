package context

import (
	"errors"
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/spf13/cobra"
)

func newDeleteCmd(rt *cmdutil.Runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a context",
		Long: `Delete a context.

This removes the stored settings and token of the context.

Examples:
  # Delete context named "staging"
  neutronctl context delete staging

  # Delete without confirmation
  neutronctl context delete staging --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contextName := args[0]

			store, err := rt.Store()
			if err != nil {
				return err
			}
			if _, err := store.GetContext(contextName); err != nil {
				if errors.Is(err, credentials.ErrContextNotFound) {
					return fmt.Errorf("context '%s' not found", contextName)
				}
				return fmt.Errorf("failed to get context: %w", err)
			}

			printer, err := rt.Printer(cmd)
			if err != nil {
				return err
			}
			return cmdutil.RunDeleteWithConfirmation(printer, "Context", contextName, force, func() error {
				return store.DeleteContext(contextName)
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation")
	return cmd
}
