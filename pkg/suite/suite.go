// Package suite loads the set of checks to run, either the built-in
// defaults or a qagate.toml file found near the working directory.
package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/vertti/qagate/pkg/check"
	"github.com/vertti/qagate/pkg/version"
)

// FileName is the suite configuration file qagate looks for.
const FileName = "qagate.toml"

// ErrNotFound reports that no suite file exists between the start
// directory and the repository or home boundary.
var ErrNotFound = errors.New("qagate.toml not found")

// Suite is a resolved set of checks plus file-level settings.
type Suite struct {
	Output string // transcript path override; empty means none
	Report string // report path; empty disables the JSON report
	Checks []check.Spec
}

// Default returns the built-in suite: tests, lint and typecheck for a
// Go repository.
func Default() Suite {
	return Suite{
		Checks: []check.Spec{
			{Name: "tests", Command: []string{"go", "test", "./..."}},
			{Name: "lint", Command: []string{"golangci-lint", "run", "./..."}},
			{Name: "typecheck", Command: []string{"go", "vet", "./..."}},
		},
	}
}

type fileConfig struct {
	Output          string      `toml:"output"`
	Report          string      `toml:"report"`
	IncludeDefaults bool        `toml:"include_defaults"`
	Checks          []fileCheck `toml:"check"`
}

type fileCheck struct {
	Name           string   `toml:"name"`
	Command        []string `toml:"command"`
	MinVersion     string   `toml:"min_version"`
	VersionArgs    []string `toml:"version_args"`
	SummaryPattern string   `toml:"summary_pattern"`
}

// FindFile locates the suite file. An explicit path must exist; with no
// explicit path the search walks up from startDir and stops after a
// directory containing .git, at the home directory, or at the
// filesystem root. ErrNotFound means the search came up empty.
func FindFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("suite file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		if currentDir == homeDir {
			break
		}
		if _, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached filesystem root
			break
		}
		currentDir = parentDir
	}

	return "", ErrNotFound
}

// Load reads and validates a suite file. Checks from the file run after
// the built-in suite unless include_defaults is set to false.
func Load(path string) (Suite, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Suite{}, fmt.Errorf("load suite file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Suite{}, fmt.Errorf("suite file %s: unknown key %q", path, undecoded[0].String())
	}

	s := Suite{
		Output: strings.TrimSpace(raw.Output),
		Report: strings.TrimSpace(raw.Report),
	}

	include := true
	if meta.IsDefined("include_defaults") {
		include = raw.IncludeDefaults
	}
	if include {
		s.Checks = Default().Checks
	}

	for i, fc := range raw.Checks {
		spec, err := fc.toSpec()
		if err != nil {
			return Suite{}, fmt.Errorf("suite file %s: check[%d]: %w", path, i, err)
		}
		s.Checks = append(s.Checks, spec)
	}

	return s, nil
}

func (fc fileCheck) toSpec() (check.Spec, error) {
	name := strings.TrimSpace(fc.Name)
	if name == "" {
		return check.Spec{}, errors.New("name is required")
	}
	if len(fc.Command) == 0 || strings.TrimSpace(fc.Command[0]) == "" {
		return check.Spec{}, errors.New("command is required")
	}
	if fc.MinVersion != "" {
		if _, err := version.Parse(fc.MinVersion); err != nil {
			return check.Spec{}, fmt.Errorf("invalid min_version: %w", err)
		}
	}
	if _, err := check.CompileRegex(fc.SummaryPattern); err != nil {
		return check.Spec{}, fmt.Errorf("invalid summary_pattern: %w", err)
	}

	return check.Spec{
		Name:           name,
		Command:        fc.Command,
		MinVersion:     fc.MinVersion,
		VersionArgs:    fc.VersionArgs,
		SummaryPattern: fc.SummaryPattern,
	}, nil
}

// Resolve returns the suite for startDir: the loaded file when one is
// found, the built-in defaults otherwise. An explicit path that cannot
// be used is an error rather than a fallback.
func Resolve(startDir, explicitPath string) (Suite, error) {
	path, err := FindFile(startDir, explicitPath)
	if errors.Is(err, ErrNotFound) {
		log.Debug().Msg("no suite file found, using built-in checks")
		return Default(), nil
	}
	if err != nil {
		return Suite{}, err
	}

	log.Debug().Str("path", path).Msg("loading suite file")
	return Load(path)
}
