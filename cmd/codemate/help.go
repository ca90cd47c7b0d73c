package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newHelpCmd replaces cobra's built-in help command so the "h" alias works
// the same way as the other command shorthands.
func newHelpCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "help [command]",
		Aliases: []string{"h"},
		Short:   "Help about any command",
		Long: `Help provides help for any command in the application.
Simply type codemate help [path to command] for full details.`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var names []string
			for _, sub := range root.Commands() {
				if !sub.Hidden && strings.HasPrefix(sub.Name(), toComplete) {
					names = append(names, sub.Name())
				}
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return root.Help()
			}

			target, _, err := root.Find(args)
			if err != nil {
				return fmt.Errorf("unknown command %q: %w", strings.Join(args, " "), err)
			}
			return target.Help()
		},
	}

	return cmd
}
