package config

import (
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Print the configuration after the file, NEUTRONCTL_* and OS_* variables
and defaults have been merged. Secrets are never printed.

Examples:
  neutronctl config show
  neutronctl config show -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rt.Flags.ConfigPath)
			if err != nil {
				return err
			}

			format := output.FormatYAML
			if rt.Flags.Output != "" {
				if format, err = output.ParseFormat(rt.Flags.Output); err != nil {
					return err
				}
			}

			switch format {
			case output.FormatJSON:
				// go through YAML so keys match the file
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				var doc map[string]any
				if err := yaml.Unmarshal(data, &doc); err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				return output.PrintJSON(cmd.OutOrStdout(), doc)
			case output.FormatYAML:
				return output.PrintYAML(cmd.OutOrStdout(), cfg)
			default:
				return fmt.Errorf("config show supports json and yaml output, not %s", format)
			}
		},
	}
}
