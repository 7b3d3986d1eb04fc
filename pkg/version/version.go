// Package version parses loose version numbers out of tool output for
// minimum-version gates.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a numeric major.minor.patch triple. Missing components
// parse as zero, so "1.55" compares as 1.55.0.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the full dotted form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// versionRegex matches version shapes like 1.2.3, v1.2 or 18.
var versionRegex = regexp.MustCompile(`v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Parse parses s as a bare version number. The whole string must be the
// version; surrounding text is an error.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	m := versionRegex.FindStringSubmatch(s)
	if m == nil || m[0] != s {
		return Version{}, fmt.Errorf("invalid version format: %q", s)
	}
	return fromMatch(m), nil
}

// Extract finds the first version number anywhere in s, typically the
// output of a --version invocation.
func Extract(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("no version found in: %q", s)
	}
	return fromMatch(m), nil
}

func fromMatch(m []string) Version {
	var v Version
	v.Major, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		v.Minor, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	return v
}

// Compare returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	pairs := [...][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v >= min.
func (v Version) AtLeast(min Version) bool {
	return v.Compare(min) >= 0
}
