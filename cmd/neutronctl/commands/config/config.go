// Package config implements the config subcommands.
package config

import (
	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/pkg/config"
	"github.com/spf13/cobra"
)

// NewCmd returns the config command and its subcommands. They run without
// credentials, so a broken configuration can still be inspected.
func NewCmd(rt *cmdutil.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the neutronctl configuration file",
		Annotations: map[string]string{cmdutil.AnnotationNoSetup: "true"},
	}

	cmd.AddCommand(
		newInitCmd(rt),
		newShowCmd(rt),
		newValidateCmd(rt),
		newSchemaCmd(),
		newEditCmd(rt),
	)
	return cmd
}

// configPath returns --config or the default location.
func configPath(rt *cmdutil.Runtime) string {
	if rt.Flags.ConfigPath != "" {
		return rt.Flags.ConfigPath
	}
	return config.GetDefaultConfigPath()
}
