// Package context implements the context subcommands, which manage the
// clouds stored by login.
package context

import (
	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/spf13/cobra"
)

// NewCmd returns the context command and its subcommands.
func NewCmd(rt *cmdutil.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "context",
		Aliases: []string{"ctx"},
		Short:   "Manage stored credential contexts",
		Long: `Manage the named contexts created by 'neutronctl login'.

A context remembers the Keystone URL, user, project and region of one
cloud together with its last token and network endpoint.`,
	}

	cmd.AddCommand(
		newListCmd(rt),
		newCurrentCmd(rt),
		newUseCmd(rt),
		newRenameCmd(rt),
		newDeleteCmd(rt),
	)
	return cmd
}
