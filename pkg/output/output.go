// Package output prints per-check status lines and the run verdict to
// the console. The transcript file is the record; this is the live echo.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/qagate/pkg/check"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, reset = "", "", "", ""
	}
}

// PrintResult writes one status line for a completed check.
func PrintResult(w io.Writer, r check.Result) {
	switch r.Status {
	case check.StatusPass:
		fmt.Fprintf(w, "%s[PASS]%s %s\n", green, reset, r.Name)
		if r.Summary != "" {
			fmt.Fprintf(w, "      %s\n", r.Summary)
		}
	case check.StatusMissing:
		fmt.Fprintf(w, "%s[MISSING]%s %s\n", yellow, reset, r.Name)
		fmt.Fprintf(w, "      command not found: %s\n", firstToken(r.Command))
	default:
		fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, r.Name)
		if r.Err != nil {
			fmt.Fprintf(w, "      %s\n", r.Err)
		} else {
			fmt.Fprintf(w, "      exit code: %d\n", r.ExitCode)
			if r.Summary != "" {
				fmt.Fprintf(w, "      %s\n", r.Summary)
			}
		}
	}
}

// PrintSummary writes the closing verdict for a run.
func PrintSummary(w io.Writer, t check.Tally) {
	fmt.Fprintf(w, "\n%d passed, %d failed, %d missing\n", t.Passed, t.Failed, t.Missing)
	if t.Success() {
		fmt.Fprintf(w, "%sAll checks passed.%s\n", green, reset)
	} else {
		fmt.Fprintf(w, "%sOne or more checks failed.%s\n", red, reset)
	}
}

func firstToken(command string) string {
	if f := strings.Fields(command); len(f) > 0 {
		return f[0]
	}
	return command
}
