// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = newCompletionCommand()

// newCompletionCommand creates the `getaddons completion` command.
func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for getaddons.

To enable shell completions, run one of the following commands:

` + SubtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(getaddons completion bash)"

  # Or install system-wide:
  getaddons completion bash > /etc/bash_completion.d/getaddons

` + SubtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(getaddons completion zsh)"

  # Or install to fpath:
  getaddons completion zsh > "${fpath[1]}/_getaddons"

` + SubtitleStyle.Render("Fish:") + `
  getaddons completion fish > ~/.config/fish/completions/getaddons.fish

` + SubtitleStyle.Render("PowerShell:") + `
  getaddons completion powershell | Out-String | Invoke-Expression

  # Or add to $PROFILE:
  getaddons completion powershell >> $PROFILE
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
