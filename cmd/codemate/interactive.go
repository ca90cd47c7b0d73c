package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codemate-labs/codemate/pkg/cli/interactive"
)

func newInteractiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Generate components in an interactive session",
		Long: `Start an interactive session that prompts for a component name and a
framework, generates the scaffold, and repeats. Type "exit" or "quit"
at the name prompt, or close the input, to leave the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			rt, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			noColor, _ := cmd.Flags().GetBool("no-color")
			prompter := interactive.NewPrompter(&interactive.PrompterConfig{
				Input:        cmd.InOrStdin(),
				Output:       cmd.OutOrStdout(),
				DisableColor: noColor || os.Getenv("NO_COLOR") != "",
			})

			session, err := interactive.NewSession(&interactive.SessionConfig{
				Prompter:         prompter,
				Registry:         rt.GetRegistry(),
				Generate:         rt.GetExecutor().SessionGenerate,
				DefaultFramework: rt.LastFramework(),
			})
			if err != nil {
				return err
			}

			if err := session.Run(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), rt.GetExecutor().SessionSummary(session.Generated()))
			return nil
		},
	}

	return cmd
}
