package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for codemate.

The completion command generates shell-specific completion scripts that enable
tab-completion for commands, flags, and framework identifiers.

Installation:

Bash:
  $ codemate completion bash > /etc/bash_completion.d/codemate
  Or for the current user:
  $ codemate completion bash > ~/.local/share/bash-completion/completions/codemate

Zsh:
  $ codemate completion zsh > ~/.zsh/completion/_codemate
  Then add the following to ~/.zshrc:
  fpath=(~/.zsh/completion $fpath)
  autoload -Uz compinit && compinit

Fish:
  $ codemate completion fish > ~/.config/fish/completions/codemate.fish

PowerShell:
  $ codemate completion powershell > codemate.ps1
  Then add to your PowerShell profile`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}
