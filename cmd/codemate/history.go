package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codemate-labs/codemate/internal/executor"
	"github.com/codemate-labs/codemate/pkg/cli/interactive"
	"github.com/codemate-labs/codemate/pkg/state"
)

// historyRow is the display shape of one history entry.
type historyRow struct {
	ID        int    `json:"id" yaml:"id"`
	Framework string `json:"framework" yaml:"framework"`
	Name      string `json:"name" yaml:"name"`
	Filename  string `json:"filename" yaml:"filename"`
	Overwrote bool   `json:"overwrote" yaml:"overwrote"`
	When      string `json:"when" yaml:"when"`
}

func newHistoryCmd() *cobra.Command {
	var (
		limit        int
		search       string
		frameworkID  string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past generations",
		Long: `Show past generations in the order they happened. Filter with
--search or --framework, and limit how many entries print with --limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			rt, err := buildRuntime(cmd)
			if err != nil {
				return err
			}
			return runHistory(rt, cmd, limit, search, frameworkID, outputFormat)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	cmd.Flags().StringVar(&search, "search", "", "Only show entries matching a name or filename pattern")
	cmd.Flags().StringVar(&frameworkID, "framework", "", "Only show entries for one framework")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (text, json, yaml, table)")

	cmd.AddCommand(newHistoryStatsCmd())
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func runHistory(rt *executor.Runtime, cmd *cobra.Command, limit int, search, frameworkID, format string) error {
	history := rt.GetHistory()
	if history == nil {
		return fmt.Errorf("generation history is unavailable")
	}

	var entries []*state.HistoryEntry
	switch {
	case search != "":
		entries = history.Search(search)
	case frameworkID != "":
		entries = history.GetByFramework(frameworkID)
	default:
		entries = history.GetRecent(limit)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		return rt.GetOutputManager().FormatEmpty(out, "No generations recorded", format)
	}

	rows := make([]historyRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, historyRow{
			ID:        entry.ID,
			Framework: entry.Framework,
			Name:      entry.Name,
			Filename:  entry.Filename,
			Overwrote: entry.Overwrote,
			When:      entry.Timestamp.Format("2006-01-02 15:04"),
		})
	}

	return rt.GetOutputManager().Format(out, rows, format)
}

func newHistoryStatsCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show generation statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			rt, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			history := rt.GetHistory()
			if history == nil {
				return fmt.Errorf("generation history is unavailable")
			}

			stats := history.GetStats()
			out := cmd.OutOrStdout()

			if outputFormat != "" && outputFormat != "text" {
				return rt.GetOutputManager().Format(out, stats, outputFormat)
			}

			fmt.Fprintln(out, "Generation statistics:")
			fmt.Fprintf(out, "  Total generations: %d\n", stats.TotalGenerations)
			fmt.Fprintf(out, "  Overwrites:        %d\n", stats.Overwrites)
			fmt.Fprintf(out, "  Bytes written:     %d\n", stats.BytesWritten)
			if stats.TotalGenerations > 0 {
				fmt.Fprintf(out, "  First generation:  %s\n", stats.FirstGeneration.Format("2006-01-02 15:04"))
				fmt.Fprintf(out, "  Last generation:   %s\n", stats.LastGeneration.Format("2006-01-02 15:04"))
			}
			if top := history.GetMostUsedFrameworks(3); len(top) > 0 {
				fmt.Fprintln(out, "  Most used frameworks:")
				for _, freq := range top {
					fmt.Fprintf(out, "    %s (%d)\n", freq.Framework, freq.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format (text, json, yaml, table)")

	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			rt, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			history := rt.GetHistory()
			if history == nil {
				return fmt.Errorf("generation history is unavailable")
			}

			out := cmd.OutOrStdout()
			if !yes {
				noColor, _ := cmd.Flags().GetBool("no-color")
				prompter := interactive.NewPrompter(&interactive.PrompterConfig{
					Input:        cmd.InOrStdin(),
					Output:       out,
					DisableColor: noColor || os.Getenv("NO_COLOR") != "",
				})
				confirmed, err := prompter.Confirm(&interactive.ConfirmPromptOptions{
					Message: fmt.Sprintf("Remove all %d history entries?", history.Count()),
				})
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
			}

			if err := history.Clear(); err != nil {
				return err
			}
			if err := history.Save(); err != nil {
				return err
			}

			fmt.Fprintln(out, "✓ History cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
