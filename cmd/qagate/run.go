package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertti/qagate/pkg/check"
	"github.com/vertti/qagate/pkg/output"
	"github.com/vertti/qagate/pkg/report"
	"github.com/vertti/qagate/pkg/runner"
	"github.com/vertti/qagate/pkg/suite"
)

// ErrChecksFailed is returned when at least one check did not pass.
// The returned error causes the process to exit with code 1.
var ErrChecksFailed = errors.New("one or more checks failed")

func runGate(cmd *cobra.Command, args []string) error {
	var outPath string
	if len(args) == 1 {
		outPath = args[0]
	}
	return runSuite(cmd, outPath, reportPath)
}

// runSuite resolves the suite and runs it once. The output path wins
// over the suite file's output setting, which wins over the default.
func runSuite(cmd *cobra.Command, outPath, reportOverride string) error {
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
	target := reportOverride
	if target == "" {
		target = s.Report
	}

	out := cmd.OutOrStdout()
	r := &runner.Runner{
		Checks: s.Checks,
		Path:   outPath,
		OnResult: func(cr check.Result) {
			output.PrintResult(out, cr)
		},
	}

	res, err := r.Run()
	if err != nil {
		return err
	}

	output.PrintSummary(out, res.Tally)

	if target != "" {
		if err := report.Write(target, res); err != nil {
			return err
		}
	}

	if !res.Success() {
		return ErrChecksFailed
	}
	return nil
}
