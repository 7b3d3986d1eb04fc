// Package runner executes a sequence of quality checks and records a
// transcript of the run in a single output file.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vertti/qagate/pkg/check"
	"github.com/vertti/qagate/pkg/summary"
	"github.com/vertti/qagate/pkg/version"
)

// DefaultOutputPath is where the transcript goes when no path is given.
const DefaultOutputPath = "qa_output.txt"

// Runner executes checks in order, appending each command's output and
// exit status to the transcript file.
type Runner struct {
	Checks   []check.Spec
	Path     string             // transcript path; empty means DefaultOutputPath
	Commands CommandRunner      // nil means RealRunner{}
	OnResult func(check.Result) // called after each check, for console echo
}

// RunResult aggregates the outcomes of one full run.
type RunResult struct {
	StartedAt time.Time
	Output    string // transcript path
	Checks    []check.Result
	Tally     check.Tally
}

// Success reports whether every check passed.
func (r *RunResult) Success() bool {
	return r.Tally.Success()
}

// Run executes every check in order. A failing or missing command never
// stops the run; it is recorded in the transcript and reflected in the
// result. The returned error is reserved for the transcript file itself
// being unusable, in which case no check has run.
func (r *Runner) Run() (*RunResult, error) {
	cmds := r.Commands
	if cmds == nil {
		cmds = RealRunner{}
	}
	path := r.Path
	if path == "" {
		path = DefaultOutputPath
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open output file: %w", err)
	}

	res := &RunResult{StartedAt: time.Now(), Output: path}
	fmt.Fprintf(f, "Quality checks run at %s\n", res.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(f, "Output file: %s\n\n", path)

	for _, spec := range r.Checks {
		cr := runCheck(cmds, f, spec)
		res.Checks = append(res.Checks, cr)
		res.Tally.Add(cr)
		if r.OnResult != nil {
			r.OnResult(cr)
		}
	}

	if res.Success() {
		fmt.Fprintln(f, "All checks passed.")
	} else {
		fmt.Fprintln(f, "One or more checks failed.")
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("cannot finish output file: %w", err)
	}
	return res, nil
}

// runCheck executes one check and writes its transcript block. Every
// path through here ends the block with a blank line.
func runCheck(cmds CommandRunner, f io.Writer, spec check.Spec) check.Result {
	cr := check.Result{Name: spec.Name, Command: spec.CommandLine()}

	fmt.Fprintf(f, "==> %s\n", spec.Name)
	fmt.Fprintf(f, "Command: %s\n", cr.Command)

	if len(spec.Command) == 0 {
		cr.Status = check.StatusFail
		cr.Err = errors.New("empty command")
		fmt.Fprintf(f, "Result: empty command\n\n")
		return cr
	}

	name := spec.Command[0]
	path, err := cmds.LookPath(name)
	if err != nil {
		cr.Status = check.StatusMissing
		fmt.Fprintf(f, "Result: missing command '%s'\n\n", name)
		log.Debug().Str("check", spec.Name).Str("command", name).Msg("command not found on PATH")
		return cr
	}
	cr.Found = true
	cr.Path = path
	log.Debug().Str("check", spec.Name).Str("path", path).Msg("resolved command")

	if spec.MinVersion != "" && !gateVersion(cmds, f, spec, &cr) {
		return cr
	}

	re, err := check.CompileRegex(spec.SummaryPattern)
	if err != nil {
		cr.Status = check.StatusFail
		cr.Err = fmt.Errorf("invalid summary pattern: %w", err)
		fmt.Fprintf(f, "Result: invalid summary pattern: %v\n\n", err)
		return cr
	}

	sink := f
	var scan *summary.Scanner
	if re != nil {
		scan = summary.NewScanner(re)
		sink = io.MultiWriter(f, scan)
	}

	started := time.Now()
	code, err := cmds.Run(spec.Command, sink)
	cr.Duration = time.Since(started)
	if err != nil {
		cr.Status = check.StatusFail
		cr.Err = err
		fmt.Fprintf(f, "Result: failed to start: %v\n\n", err)
		return cr
	}

	if scan != nil {
		scan.Flush()
		cr.Summary, _ = scan.Match()
	}

	cr.ExitCode = code
	fmt.Fprintf(f, "Exit code: %d\n\n", code)
	if code == 0 {
		cr.Status = check.StatusPass
	} else {
		cr.Status = check.StatusFail
	}
	log.Debug().Str("check", spec.Name).Int("exit_code", code).Dur("duration", cr.Duration).Msg("check finished")
	return cr
}

// gateVersion enforces a minimum tool version before the check runs.
// It reports false when the check must not proceed, with cr updated and
// the transcript block closed.
func gateVersion(cmds CommandRunner, f io.Writer, spec check.Spec, cr *check.Result) bool {
	want, err := version.Parse(spec.MinVersion)
	if err != nil {
		cr.Status = check.StatusFail
		cr.Err = fmt.Errorf("invalid minimum version: %w", err)
		fmt.Fprintf(f, "Result: invalid minimum version %q\n\n", spec.MinVersion)
		return false
	}

	args := spec.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}

	out, err := cmds.Output(append([]string{spec.Command[0]}, args...))
	if err != nil {
		cr.Status = check.StatusFail
		cr.Err = fmt.Errorf("cannot determine version: %w", err)
		fmt.Fprintf(f, "Result: cannot determine version: %v\n\n", err)
		return false
	}

	got, err := version.Extract(out)
	if err != nil {
		cr.Status = check.StatusFail
		cr.Err = fmt.Errorf("cannot determine version: %w", err)
		fmt.Fprintf(f, "Result: cannot determine version: %v\n\n", err)
		return false
	}

	cr.Version = got.String()
	if !got.AtLeast(want) {
		cr.Status = check.StatusFail
		cr.Err = fmt.Errorf("version %s below minimum %s", got, want)
		fmt.Fprintf(f, "Result: version %s below minimum %s\n\n", got, want)
		return false
	}
	return true
}
