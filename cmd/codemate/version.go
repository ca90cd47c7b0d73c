package main

import (
	"fmt"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"github.com/codemate-labs/codemate/pkg/output"
)

// versionInfo is the structured shape of the version command output.
type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	Compiler  string `json:"compiler" yaml:"compiler"`
}

func newVersionCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			info := versionInfo{
				Version:   version,
				GoVersion: goruntime.Version(),
				Platform:  fmt.Sprintf("%s/%s", goruntime.GOOS, goruntime.GOARCH),
				Compiler:  goruntime.Compiler,
			}
			out := cmd.OutOrStdout()

			if outputFormat != "" && outputFormat != "text" {
				return output.NewManager().Format(out, info, outputFormat)
			}

			fmt.Fprintf(out, "codemate version %s\n", info.Version)
			fmt.Fprintf(out, "  Go:       %s\n", info.GoVersion)
			fmt.Fprintf(out, "  Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "  Compiler: %s\n", info.Compiler)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format (text, json, yaml, table)")

	return cmd
}
