package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/gwconfig/internal/config"
)

// NewCompletionCommand creates the completion command for generating shell completions.
func NewCompletionCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gwconfig.

To load completions:

Bash:
  $ source <(gwconfig completion bash)

  # To load completions for each session, execute once:
  $ gwconfig completion bash > /etc/bash_completion.d/gwconfig

Zsh:
  $ gwconfig completion zsh > "${fpath[1]}/_gwconfig"

Fish:
  $ gwconfig completion fish > ~/.config/fish/completions/gwconfig.fish

PowerShell:
  PS> gwconfig completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// completion never touches the store or the settings file
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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

	return cmd
}
