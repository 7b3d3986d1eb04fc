package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vertti/qagate/pkg/check"
	"github.com/vertti/qagate/pkg/runner"
)

func sampleRun() *runner.RunResult {
	res := &runner.RunResult{
		StartedAt: time.Date(2026, 8, 21, 10, 32, 11, 0, time.UTC),
		Output:    "qa_output.txt",
		Checks: []check.Result{
			{
				Name:     "tests",
				Command:  "go test ./...",
				Path:     "/usr/local/bin/go",
				Found:    true,
				ExitCode: 0,
				Status:   check.StatusPass,
				Summary:  "ok 12 packages",
				Duration: 2150 * time.Millisecond,
			},
			{
				Name:     "lint",
				Command:  "golangci-lint run ./...",
				Found:    true,
				ExitCode: 1,
				Status:   check.StatusFail,
				Duration: 400 * time.Millisecond,
			},
			{
				Name:    "typecheck",
				Command: "go vet ./...",
				Status:  check.StatusMissing,
			},
		},
	}
	for _, cr := range res.Checks {
		res.Tally.Add(cr)
	}
	return res
}

func TestFromRun(t *testing.T) {
	rep := FromRun(sampleRun())

	if rep.Success {
		t.Error("Success = true, want false")
	}
	if rep.Passed != 1 || rep.Failed != 1 || rep.Missing != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", rep.Passed, rep.Failed, rep.Missing)
	}
	if len(rep.Checks) != 3 {
		t.Fatalf("len(Checks) = %d, want 3", len(rep.Checks))
	}

	tests := rep.Checks[0]
	if tests.ExitCode == nil || *tests.ExitCode != 0 {
		t.Errorf("tests.ExitCode = %v, want 0", tests.ExitCode)
	}
	if tests.DurationMS != 2150 {
		t.Errorf("tests.DurationMS = %d, want 2150", tests.DurationMS)
	}
	if tests.Summary != "ok 12 packages" {
		t.Errorf("tests.Summary = %q", tests.Summary)
	}

	missing := rep.Checks[2]
	if missing.ExitCode != nil {
		t.Errorf("missing.ExitCode = %v, want nil for a command that never ran", *missing.ExitCode)
	}
	if missing.Status != "missing" {
		t.Errorf("missing.Status = %q, want %q", missing.Status, "missing")
	}
}

func TestFromRunStartError(t *testing.T) {
	res := &runner.RunResult{
		Checks: []check.Result{
			{
				Name:    "tests",
				Command: "go test",
				Found:   true,
				Status:  check.StatusFail,
				Err:     errors.New("permission denied"),
			},
		},
	}
	res.Tally.Add(res.Checks[0])

	rep := FromRun(res)
	if rep.Checks[0].ExitCode != nil {
		t.Error("ExitCode set for a command that failed to start")
	}
	if rep.Checks[0].Error != "permission denied" {
		t.Errorf("Error = %q, want %q", rep.Checks[0].Error, "permission denied")
	}
}

func TestWriteLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa_report.json")

	if err := Write(path, sampleRun()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rep, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rep.Output != "qa_output.txt" || rep.Failed != 1 {
		t.Errorf("loaded report = %+v", rep)
	}
	if len(rep.Checks) != 3 || rep.Checks[1].Name != "lint" {
		t.Errorf("loaded checks = %+v", rep.Checks)
	}
}

func TestQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa_report.json")
	if err := Write(path, sampleRun()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	tests := []struct {
		query string
		want  string
	}{
		{"failed", "1"},
		{"success", "false"},
		{`checks.#(name=="tests").exit_code`, "0"},
		{`checks.#(name=="typecheck").status`, "missing"},
		{"checks.#", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Query(path, tt.query)
			if err != nil {
				t.Fatalf("Query(%q) error = %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("Query(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestQueryNoValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa_report.json")
	if err := Write(path, sampleRun()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	_, err := Query(path, "no.such.path")
	if !errors.Is(err, ErrNoValue) {
		t.Errorf("Query() error = %v, want ErrNoValue", err)
	}
}

func TestQueryInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Query(path, "failed")
	if err == nil || !strings.Contains(err.Error(), "not valid JSON") {
		t.Errorf("Query() error = %v, want invalid JSON error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Error("Load() error = nil, want error for missing file")
	}
}
