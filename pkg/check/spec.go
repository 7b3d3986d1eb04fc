package check

import "strings"

// Spec describes one quality check: a named external command to run.
type Spec struct {
	Name    string   // display name, e.g. "tests"
	Command []string // argv; Command[0] is looked up on PATH

	MinVersion     string   // minimum tool version required (inclusive), e.g. "1.55"
	VersionArgs    []string // args that print the tool version (default: --version)
	SummaryPattern string   // regex whose first match becomes the result summary
}

// CommandLine returns the argv joined with spaces for display.
func (s Spec) CommandLine() string {
	return strings.Join(s.Command, " ")
}
