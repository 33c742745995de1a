package commands

import (
	"github.com/marmos91/neutronctl/cmd/neutronctl/cmdutil"
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for neutronctl.

To load completions:

Bash:
  # Linux:
  $ neutronctl completion bash > /etc/bash_completion.d/neutronctl
  # macOS:
  $ neutronctl completion bash > $(brew --prefix)/etc/bash_completion.d/neutronctl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ neutronctl completion zsh > "${fpath[1]}/_neutronctl"

Fish:
  $ neutronctl completion fish > ~/.config/fish/completions/neutronctl.fish

PowerShell:
  PS> neutronctl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           map[string]string{cmdutil.AnnotationNoSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
