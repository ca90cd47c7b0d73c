package main

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/codemate-labs/codemate/internal/executor"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codemate",
		Short: "codemate - Generate component scaffolds for popular frameworks",
		Long: `codemate generates component scaffolds for react, angular, python,
node and java projects. Files land under src/components by default,
in a per-framework subdirectory; set CODEMATE_OUTPUT_DIR or add a
codemate.yaml manifest to change where they go.`,
		Version:       version,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			noColor, _ := cmd.Flags().GetBool("no-color")
			if noColor || os.Getenv("NO_COLOR") != "" {
				pterm.DisableColor()
			}
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newInteractiveCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.SetHelpCommand(newHelpCmd(cmd))

	return cmd
}

// buildRuntime wires the generation pipeline for one command invocation,
// reading the merged flag set after cobra has parsed it.
func buildRuntime(cmd *cobra.Command) (*executor.Runtime, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return executor.NewRuntime(&executor.RuntimeConfig{
		Version: version,
		Verbose: verbose,
		Out:     cmd.OutOrStdout(),
		ErrOut:  cmd.ErrOrStderr(),
	})
}

// flagValues walks a parsed flag set into template data, so user message
// templates can reference flag state as flags.dry_run and the like.
func flagValues(fs *pflag.FlagSet) map[string]interface{} {
	values := make(map[string]interface{})
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if f.Value.Type() == "bool" {
			values[key] = f.Value.String() == "true"
			return
		}
		values[key] = f.Value.String()
	})
	return values
}
