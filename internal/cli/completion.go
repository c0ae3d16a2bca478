package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isplab/citegraph/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for citegraph.

To load completions:

Bash:
  $ source <(citegraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ citegraph completion bash > /etc/bash_completion.d/citegraph
  # macOS:
  $ citegraph completion bash > $(brew --prefix)/etc/bash_completion.d/citegraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ citegraph completion zsh > "${fpath[1]}/_citegraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ citegraph completion fish | source

  # To load completions for each session, execute once:
  $ citegraph completion fish > ~/.config/fish/completions/citegraph.fish

PowerShell:
  PS> citegraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> citegraph completion powershell > citegraph.ps1
  # and source this file from your PowerShell profile.
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

	return cmd
}

// registerFlagCompletions adds value completion for flags with a closed set
// of values. Flags a command does not define are skipped.
func registerFlagCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"format":  pipeline.FormatNames(),
		"match":   {"exact", "normalized"},
		"palette": {"default", "extended"},
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		if name == "format" {
			_ = cmd.RegisterFlagCompletionFunc(name, formatCompletion)
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
	if cmd.Flags().Lookup("titles") != nil {
		_ = cmd.MarkFlagFilename("titles", "txt", "json")
	}
	cmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
}

// formatCompletion completes the last element of a comma-separated format list.
func formatCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range pipeline.FormatNames() {
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
