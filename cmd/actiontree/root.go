package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpumuk/actiontree/internal/logging"
)

const (
	exitOK       = 0
	exitConflict = 1
	exitUsage    = 2
	exitInternal = 3
)

func run(args []string) int {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "actiontree",
		Short: "Apply conflict-checked edit scripts to source text",
		Long: `actiontree runs a YAML edit script through the action tree rewriting
engine and writes the rewritten source, detecting crossing deletions,
crossing insertions, conflicting replacements, and swallowed insertions
along the way.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "actiontree: %v\n", err)
		return exitCodeFor(err)
	}
	return exitOK
}
