package context

import (
	"fmt"
	"time"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/internal/cli/timeutil"
	"github.com/spf13/cobra"
)

func newCurrentCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show current context",
		Long: `Display information about the current active context.

Examples:
  # Show current context
  neutronctl context current

  # Show as JSON
  neutronctl context current -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rt.Store()
			if err != nil {
				return err
			}

			contextName := store.GetCurrentContextName()
			if contextName == "" {
				return fmt.Errorf("no current context set\n\n" +
					"Login to a cloud first:\n" +
					"  neutronctl login --auth-url https://keystone.example.com:5000/v3")
			}
			ctx, err := store.GetContext(contextName)
			if err != nil {
				return fmt.Errorf("failed to get context: %w", err)
			}

			printer, err := rt.Printer(cmd)
			if err != nil {
				return err
			}

			info := newContextInfo(contextName, true, ctx)
			if printer.Format().Structured() {
				return printer.Print(info)
			}

			status := "Not logged in"
			if info.LoggedIn {
				status = fmt.Sprintf("Logged in until %s (%s)",
					timeutil.FormatLocal(ctx.ExpiresAt), timeutil.FormatExpiry(ctx.ExpiresAt, time.Now()))
			}
			printer.Printf("Current context: %s\n", contextName)
			printer.Printf("  Auth URL:  %s\n", ctx.AuthURL)
			printer.Printf("  User:      %s\n", cmdutil.EmptyOr(ctx.Username, "-"))
			printer.Printf("  Project:   %s\n", cmdutil.EmptyOr(info.Project, "-"))
			printer.Printf("  Region:    %s\n", cmdutil.EmptyOr(ctx.Region, "-"))
			printer.Printf("  Endpoint:  %s\n", cmdutil.EmptyOr(ctx.Endpoint, "-"))
			printer.Printf("  Status:    %s\n", status)
			return nil
		},
	}
}
