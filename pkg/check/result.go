package check

import "time"

// Status classifies the outcome of a check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusMissing Status = "missing"
)

// Result holds the outcome of a single check.
type Result struct {
	Name     string // display name copied from Spec.Name
	Command  string // command line as displayed in the transcript
	Path     string // resolved executable path, when found
	Found    bool   // command resolved on PATH
	ExitCode int    // child exit code, valid when the command ran
	Status   Status
	Version  string        // detected tool version, when a version gate ran
	Summary  string        // first summary pattern match, if any
	Duration time.Duration // wall time of the command, when it ran
	Err      error         // start or version-gate error
}

// OK reports whether the check passed.
func (r Result) OK() bool {
	return r.Status == StatusPass
}

// Ran reports whether the command executed to completion, meaning
// ExitCode carries the child's real exit status.
func (r Result) Ran() bool {
	return r.Found && r.Err == nil
}

// Tally counts check outcomes across a run.
type Tally struct {
	Passed  int
	Failed  int
	Missing int
}

// Add counts one result.
func (t *Tally) Add(r Result) {
	switch r.Status {
	case StatusPass:
		t.Passed++
	case StatusMissing:
		t.Missing++
	default:
		t.Failed++
	}
}

// Total returns the number of counted results.
func (t Tally) Total() int {
	return t.Passed + t.Failed + t.Missing
}

// Success reports whether every counted check passed.
func (t Tally) Success() bool {
	return t.Failed == 0 && t.Missing == 0
}
