package cli

import (
	"github.com/spf13/cobra"
)

// completionShells are the shells cobra can generate scripts for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script to the CLI output.
// Completions cover subcommands and flags such as --format, --dim and
// --lang; file arguments fall back to the shell's own path completion.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for umlgraph.

Load it into the current shell:

  bash:        source <(umlgraph completion bash)
  zsh:         source <(umlgraph completion zsh)
  fish:        umlgraph completion fish | source
  powershell:  umlgraph completion powershell | Out-String | Invoke-Expression

To keep completions across sessions, write the script to your shell's
completion directory, e.g. "${fpath[1]}/_umlgraph" for zsh or
~/.config/fish/completions/umlgraph.fish for fish.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), c.out()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			default:
				return root.GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}
