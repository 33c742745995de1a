package context

import (
	"errors"
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/internal/cli/credentials"
	"github.com/spf13/cobra"
)

func newRenameCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a context",
		Long: `Rename an existing context.

Examples:
  # Rename context from "default" to "production"
  neutronctl context rename default production`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], args[1]

			store, err := rt.Store()
			if err != nil {
				return err
			}

			if err := store.RenameContext(oldName, newName); err != nil {
				switch {
				case errors.Is(err, credentials.ErrContextNotFound):
					return fmt.Errorf("context '%s' not found", oldName)
				case errors.Is(err, credentials.ErrContextExists):
					return fmt.Errorf("context '%s' already exists", newName)
				}
				return fmt.Errorf("failed to rename context: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Context renamed: %s -> %s\n", oldName, newName)
			return nil
		},
	}
}
