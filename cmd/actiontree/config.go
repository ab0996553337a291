package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpumuk/actiontree/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or generate actiontree configuration",
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default policy configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(output, force)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", ".actiontree.yml", "output file path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runConfigInit(output string, force bool) error {
	if !force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		}
	}

	data, err := config.Default().ToYAML()
	if err != nil {
		return fmt.Errorf("render default config: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
