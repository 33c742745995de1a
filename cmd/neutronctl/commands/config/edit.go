package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/spf13/cobra"
)

func newEditCmd(rt *cmdutil.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open configuration in editor",
		Long: `Open the configuration file in your default editor.

Uses the EDITOR environment variable, then VISUAL, falling back to 'vi'.

Examples:
  # Edit default config
  neutronctl config edit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(rt)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("configuration file not found: %s\n\n"+
					"Create it first with:\n"+
					"  neutronctl config init --config %s",
					path, path)
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vi"
			}

			editorCmd := exec.Command(editor, path)
			editorCmd.Stdin = os.Stdin
			editorCmd.Stdout = cmd.OutOrStdout()
			editorCmd.Stderr = cmd.ErrOrStderr()

			if err := editorCmd.Run(); err != nil {
				return fmt.Errorf("failed to run editor: %w", err)
			}
			return nil
		},
	}
}
