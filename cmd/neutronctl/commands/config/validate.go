package config

import (
	"fmt"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/marmos91/neutronctl/pkg/config"
	"github.com/spf13/cobra"
)

func newValidateCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the neutronctl configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  neutronctl config validate

  # Validate specific config file
  neutronctl config validate --config ./neutronctl.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.MustLoad(rt.Flags.ConfigPath)
			if err != nil {
				return err
			}

			var warnings []string
			if cfg.Cloud.AuthURL == "" && cfg.Cloud.Endpoint == "" {
				warnings = append(warnings, "cloud.auth_url not configured - login needs --auth-url")
			}
			if cfg.Cloud.Insecure {
				warnings = append(warnings, "cloud.insecure is set - TLS certificates are not verified")
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Configuration file: %s\n", configPath(rt))
			_, _ = fmt.Fprintln(out, "Validation: OK")

			if len(warnings) > 0 {
				_, _ = fmt.Fprintln(out, "\nWarnings:")
				for _, w := range warnings {
					_, _ = fmt.Fprintf(out, "  - %s\n", w)
				}
			}

			_, _ = fmt.Fprintf(out, "\nConfiguration summary:\n")
			_, _ = fmt.Fprintf(out, "  Auth URL:        %s\n", cmdutil.EmptyOr(cfg.Cloud.AuthURL, "-"))
			_, _ = fmt.Fprintf(out, "  Region:          %s\n", cmdutil.EmptyOr(cfg.Cloud.Region, "-"))
			_, _ = fmt.Fprintf(out, "  Interface:       %s\n", cfg.Cloud.Interface)
			_, _ = fmt.Fprintf(out, "  Output format:   %s\n", cfg.Output.Format)
			_, _ = fmt.Fprintf(out, "  Log level:       %s\n", cfg.Logging.Level)
			return nil
		},
	}
}
