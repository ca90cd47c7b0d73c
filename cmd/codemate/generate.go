package main

import (
	"fmt"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/codemate-labs/codemate/internal/executor"
	"github.com/codemate-labs/codemate/pkg/framework"
)

func newGenerateCmd() *cobra.Command {
	var (
		dryRun   bool
		openFile bool
	)

	cmd := &cobra.Command{
		Use:     "generate <framework> <name> [output-dir]",
		Aliases: []string{"g"},
		Short:   "Generate a component scaffold",
		Long: `Generate a component scaffold for the given framework. The name may
be quoted and multi-word; it is normalized into the framework's
naming convention before the file is written.

Examples:
  codemate generate react UserCard
  codemate g python "user card" lib/components
  codemate generate java OrderService --dry-run`,
		Args: cobra.RangeArgs(2, 3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return framework.NewRegistry().IDs(), cobra.ShellCompDirectiveNoFileComp
			}
			if len(args) == 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			rt, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			req := &executor.GenerateRequest{
				Framework: args[0],
				Name:      args[1],
				DryRun:    dryRun,
				Extra:     map[string]interface{}{"flags": flagValues(cmd.Flags())},
			}
			if len(args) == 3 {
				req.OutputDir = args[2]
			}

			result, err := rt.GetExecutor().Generate(req)
			if err != nil {
				return err
			}

			if openFile && !result.DryRun {
				if err := open.Run(result.Path); err != nil {
					return fmt.Errorf("opening %s: %w", result.Path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render without writing the file")
	cmd.Flags().BoolVar(&openFile, "open", false, "Open the generated file with the default application")

	return cmd
}
