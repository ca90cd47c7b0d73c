package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codemate-labs/codemate/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect codemate configuration",
		Long: `Inspect the merged configuration and where each value came from, or
validate a project manifest before committing it.`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

// configRow is one resolved setting with its provenance.
type configRow struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

func newConfigShowCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the merged configuration and its sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			rt, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			loaded := rt.GetLoaded()
			rows := configRows(loaded)
			out := cmd.OutOrStdout()

			if outputFormat != "" && outputFormat != "text" {
				return rt.GetOutputManager().Format(out, rows, outputFormat)
			}

			for _, row := range rows {
				fmt.Fprintf(out, "%s: %s (%s)\n", row.Key, row.Value, row.Source)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "User config: %s\n", loaded.UserPath)
			if loaded.ManifestPath != "" {
				fmt.Fprintf(out, "Manifest: %s\n", loaded.ManifestPath)
			} else {
				fmt.Fprintln(out, "Manifest: none")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format (text, json, yaml, table)")

	return cmd
}

// configRows flattens the merged settings into provenance rows, stable order.
func configRows(loaded *config.Loaded) []configRow {
	final := loaded.Final
	rows := []configRow{
		{Key: "output_root", Value: final.OutputRoot, Source: loaded.Sources["output_root"]},
		{Key: "format", Value: final.Format, Source: loaded.Sources["format"]},
		{Key: "verbose", Value: fmt.Sprintf("%t", final.Verbose), Source: loaded.Sources["verbose"]},
	}

	dirIDs := make([]string, 0, len(final.FrameworkDirs))
	for id := range final.FrameworkDirs {
		dirIDs = append(dirIDs, id)
	}
	sort.Strings(dirIDs)
	for _, id := range dirIDs {
		source := "user config"
		if loaded.Manifest != nil {
			if _, ok := loaded.Manifest.FrameworkDirs[id]; ok {
				source = "manifest"
			}
		}
		rows = append(rows, configRow{
			Key:    "framework_dirs." + id,
			Value:  final.FrameworkDirs[id],
			Source: source,
		})
	}

	messageNames := make([]string, 0, len(final.Messages))
	for name := range final.Messages {
		messageNames = append(messageNames, name)
	}
	sort.Strings(messageNames)
	for _, name := range messageNames {
		source := "user config"
		if loaded.Manifest != nil {
			if _, ok := loaded.Manifest.Messages[name]; ok {
				source = "manifest"
			}
		}
		rows = append(rows, configRow{
			Key:    "messages." + name,
			Value:  final.Messages[name],
			Source: source,
		})
	}

	return rows
}

func newConfigValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a project manifest",
		Long: `Validate a codemate.yaml against the manifest schema. Without a path,
the manifest is discovered by walking up from the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to resolve working directory: %w", err)
				}
				found, ok := config.DiscoverManifest(wd)
				if !ok {
					return fmt.Errorf("no %s found in %s or any parent directory", config.ManifestName, wd)
				}
				path = found
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}

			if err := config.ValidateManifest(data); err != nil {
				return fmt.Errorf("invalid manifest %s: %w", path, err)
			}

			// Schema validation accepts any requires string; parse it so a
			// typo'd constraint fails here, not on the next generate.
			var m config.Manifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("failed to parse manifest %s: %w", path, err)
			}
			if m.Requires != "" {
				if _, err := semver.NewConstraint(m.Requires); err != nil {
					return fmt.Errorf("invalid requires constraint %q in %s: %w", m.Requires, path, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
			return nil
		},
	}

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the user config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			loader := config.NewLoader("codemate", version)
			fmt.Fprintln(cmd.OutOrStdout(), loader.UserConfigPath())
			return nil
		},
	}

	return cmd
}
