package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpumuk/actiontree/internal/config"
	"github.com/kpumuk/actiontree/internal/logging"
	"github.com/kpumuk/actiontree/internal/policy"
	"github.com/kpumuk/actiontree/internal/rewrite"
	"github.com/kpumuk/actiontree/internal/rng"
)

type applyFlags struct {
	configPath string
	scriptPath string
	write      bool
	diff       bool
	debug      bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <source-file>",
		Short: "Run an edit script against a source file",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &usageError{msg: fmt.Sprintf("apply takes exactly one source file argument, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.debug, _ = cmd.Flags().GetBool("debug")
			return runApply(flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to policy config YAML (default: built-in defaults)")
	cmd.Flags().StringVar(&flags.scriptPath, "script", "", "path to the edit script YAML (required)")
	cmd.Flags().BoolVar(&flags.write, "write", false, "write the result back to the source file instead of stdout")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a line diff instead of the full rewritten text")

	return cmd
}

func runApply(flags *applyFlags, sourcePath string) error {
	if flags.scriptPath == "" {
		return &usageError{msg: "--script is required"}
	}

	cfg := config.Default()
	if flags.configPath != "" {
		data, err := os.ReadFile(flags.configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		cfg, err = config.FromYAML(data)
		if err != nil {
			return err
		}
	}
	if !flags.debug {
		logging.SetLevel(cfg.LogLevel)
	}
	logger := logging.Default()

	scriptData, err := os.ReadFile(flags.scriptPath)
	if err != nil {
		return fmt.Errorf("read edit script: %w", err)
	}
	script, err := config.ParseEditScript(scriptData)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	enf := cfg.Settings().WithSink(func(d policy.Diagnostic) {
		logger.Warn(d.String())
	})
	rw := rewrite.New(rewrite.StringBuffer(src), enf)

	if err := applyScript(rw, script); err != nil {
		return err
	}

	out, err := rw.Process()
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	switch {
	case flags.write:
		if err := os.WriteFile(sourcePath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write source: %w", err)
		}
	case flags.diff:
		printDiff(os.Stdout, string(src), out)
	default:
		fmt.Fprint(os.Stdout, out)
	}
	return nil
}

func applyScript(rw *rewrite.TreeRewriter, script *config.EditScript) error {
	for i, e := range script.Edits {
		r := rng.Range{Begin: rng.Offset(e.Begin), End: rng.Offset(e.End)}
		var err error
		switch e.Op {
		case config.OpInsertBefore:
			err = rw.InsertBefore(r, e.Text)
		case config.OpInsertAfter:
			err = rw.InsertAfter(r, e.Text)
		case config.OpReplace:
			err = rw.Replace(r, e.Text)
		case config.OpRemove:
			err = rw.Remove(r)
		case config.OpWrap:
			err = rw.Wrap(r, e.Before, e.After)
		}
		if err != nil {
			return fmt.Errorf("edit script entry %d (%s %s): %w", i, e.Op, r, err)
		}
	}
	return nil
}
