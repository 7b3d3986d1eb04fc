// Package report writes and queries the machine-readable record of a
// run. The report is a sibling of the transcript: same data, JSON
// instead of prose.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vertti/qagate/pkg/check"
	"github.com/vertti/qagate/pkg/runner"
)

// DefaultPath is where the report goes when no path is configured.
const DefaultPath = "qa_report.json"

// ErrNoValue reports that a query matched nothing in the document.
var ErrNoValue = errors.New("no value at query path")

// Report is the JSON document describing one full run.
type Report struct {
	StartedAt time.Time    `json:"started_at"`
	Output    string       `json:"output"`
	Success   bool         `json:"success"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
	Missing   int          `json:"missing"`
	Checks    []CheckEntry `json:"checks"`
}

// CheckEntry is the report form of one check result.
type CheckEntry struct {
	Name       string `json:"name"`
	Command    string `json:"command"`
	Found      bool   `json:"found"`
	Status     string `json:"status"`
	ExitCode   *int   `json:"exit_code,omitempty"` // set only when the command ran
	Version    string `json:"version,omitempty"`
	Summary    string `json:"summary,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// FromRun converts a run result into its report form.
func FromRun(res *runner.RunResult) Report {
	rep := Report{
		StartedAt: res.StartedAt,
		Output:    res.Output,
		Success:   res.Success(),
		Passed:    res.Tally.Passed,
		Failed:    res.Tally.Failed,
		Missing:   res.Tally.Missing,
		Checks:    make([]CheckEntry, 0, len(res.Checks)),
	}
	for _, cr := range res.Checks {
		rep.Checks = append(rep.Checks, entryFor(cr))
	}
	return rep
}

func entryFor(cr check.Result) CheckEntry {
	e := CheckEntry{
		Name:       cr.Name,
		Command:    cr.Command,
		Found:      cr.Found,
		Status:     string(cr.Status),
		Version:    cr.Version,
		Summary:    cr.Summary,
		DurationMS: cr.Duration.Milliseconds(),
	}
	if cr.Ran() {
		code := cr.ExitCode
		e.ExitCode = &code
	}
	if cr.Err != nil {
		e.Error = cr.Err.Error()
	}
	return e
}

// Write stores the report for res at path as indented JSON.
func Write(path string, res *runner.RunResult) error {
	data, err := json.MarshalIndent(FromRun(res), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Load reads a report document back from disk.
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}
	return rep, nil
}

// Query evaluates a gjson expression against the report file at path
// and returns the raw result, e.g. `failed` or
// `checks.#(name=="lint").exit_code`.
func Query(path, query string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("report %s is not valid JSON", path)
	}

	v := gjson.GetBytes(data, query)
	if !v.Exists() {
		return "", fmt.Errorf("%w: %s", ErrNoValue, query)
	}
	return v.String(), nil
}
