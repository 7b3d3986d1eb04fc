package check

import "regexp"

// CompileRegex compiles a regex pattern if non-empty, returning nil if pattern
// is empty. Optional patterns in specs and config all go through this.
func CompileRegex(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}
