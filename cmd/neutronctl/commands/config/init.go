package config

import (
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/pkg/config"
	"github.com/spf13/cobra"
)

func newInitCmd(rt *cmdutil.Runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Write a configuration file with default values.

Examples:
  # Create $XDG_CONFIG_HOME/neutronctl/config.yaml
  neutronctl config init

  # Create or replace a specific file
  neutronctl config init --config ./neutronctl.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(rt)
			if err := config.InitConfigToPath(path, force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Configuration file created at: %s\n", path)
			_, _ = fmt.Fprintln(out, "\nNext steps:")
			_, _ = fmt.Fprintln(out, "  1. Set cloud.auth_url, cloud.username and cloud.project_name")
			_, _ = fmt.Fprintln(out, "  2. Run 'neutronctl login'")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
