package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List the supported frameworks",
		Long: `List the supported framework identifiers, one per line. Use -o to
get the full framework table as json, yaml or table output instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			rt, err := buildRuntime(cmd)
			if err != nil {
				return err
			}
			return rt.GetExecutor().List(outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format (text, json, yaml, table)")

	return cmd
}
