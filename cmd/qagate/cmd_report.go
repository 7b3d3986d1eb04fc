package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vertti/qagate/pkg/report"
)

var (
	reportFile  string
	reportQuery string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect the JSON report written by a previous run",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFile, "file", report.DefaultPath, "path to the JSON report")
	reportCmd.Flags().StringVar(&reportQuery, "query", "", "gjson path to extract, e.g. 'failed' or 'checks.#(name==\"lint\").status'")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportQuery != "" {
		value, err := report.Query(reportFile, reportQuery)
		if err != nil {
			if errors.Is(err, report.ErrNoValue) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(2)
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	rep, err := report.Load(reportFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run started: %s\n", rep.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Transcript:  %s\n\n", rep.Output)
	for _, c := range rep.Checks {
		line := fmt.Sprintf("[%s] %s", strings.ToUpper(c.Status), c.Name)
		if c.Summary != "" {
			line += " (" + c.Summary + ")"
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "\n%d passed, %d failed, %d missing\n", rep.Passed, rep.Failed, rep.Missing)

	if !rep.Success {
		return ErrChecksFailed
	}
	return nil
}
