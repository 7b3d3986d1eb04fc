package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertti/qagate/pkg/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configPath string
	verbose    bool
	reportPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrChecksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qagate [output-file]",
	Short: "Run the project quality checks and record a transcript",
	Long: `Qagate runs a suite of quality checks (tests, lint, typecheck by
default, or the checks from a qagate.toml file) one after another and
writes everything they print into a single output file, along with each
command's exit code and an overall verdict.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Configure(verbose)
	},
	RunE: runGate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to qagate.toml (default: search up from current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "write a JSON report of the run to this file")
}
