package runner

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
)

// CommandRunner abstracts PATH resolution and child processes for
// testability.
type CommandRunner interface {
	// LookPath resolves file against PATH.
	LookPath(file string) (string, error)

	// Run executes argv with stdout and stderr both attached to sink and
	// returns the child's exit code. A non-nil error means the command
	// never ran to completion.
	Run(argv []string, sink io.Writer) (int, error)

	// Output executes argv and returns its combined stdout and stderr.
	Output(argv []string) (string, error)
}

// RealRunner implements CommandRunner using actual OS commands.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command with both output streams on sink. Handing the
// same writer to stdout and stderr keeps the interleaving in arrival
// order.
func (RealRunner) Run(argv []string, sink io.Writer) (int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = sink
	cmd.Stderr = sink

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

// Output executes a command and captures its combined output.
func (RealRunner) Output(argv []string) (string, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.String(), err
}

// MockRunner is a test double for CommandRunner.
type MockRunner struct {
	LookPathFunc func(file string) (string, error)
	RunFunc      func(argv []string, sink io.Writer) (int, error)
	OutputFunc   func(argv []string) (string, error)
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// Run calls the mock function.
func (m *MockRunner) Run(argv []string, sink io.Writer) (int, error) {
	return m.RunFunc(argv, sink)
}

// Output calls the mock function.
func (m *MockRunner) Output(argv []string) (string, error) {
	return m.OutputFunc(argv)
}
