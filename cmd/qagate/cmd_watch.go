package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vertti/qagate/pkg/runner"
	"github.com/vertti/qagate/pkg/suite"
	"github.com/vertti/qagate/pkg/watch"
)

var debounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [output-file]",
	Short: "Re-run the quality checks whenever a file changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period after a change before re-running")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	var outPath string
	if len(args) == 1 {
		outPath = args[0]
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	s, err := suite.Resolve(wd, configPath)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = s.Output
	}
	if outPath == "" {
		outPath = runner.DefaultOutputPath
	}

	// The run's own artifacts must not retrigger it.
	ignore := []string{outPath}
	if s.Report != "" {
		ignore = append(ignore, s.Report)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var lastErr error
	err = watch.Run(ctx, watch.Options{
		Root:     wd,
		Debounce: debounce,
		Ignore:   ignore,
	}, func() {
		lastErr = runSuite(cmd, outPath, "")
	})
	if err != nil {
		return err
	}
	return lastErr
}
