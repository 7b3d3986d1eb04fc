// Package summary extracts a one-line summary from streamed tool output.
package summary

import (
	"bytes"
	"regexp"
)

// maxPartial bounds the bytes held while waiting for a newline. Longer
// lines are scanned in chunks.
const maxPartial = 64 << 10

// Scanner is an io.Writer that watches the bytes flowing through it for
// the first line matching a pattern. It only observes, so it can sit in
// an io.MultiWriter next to the real sink.
type Scanner struct {
	re      *regexp.Regexp
	partial bytes.Buffer
	match   string
	found   bool
}

// NewScanner returns a scanner for re. A nil re matches nothing.
func NewScanner(re *regexp.Regexp) *Scanner {
	return &Scanner{re: re}
}

// Write scans complete lines in p. It always reports len(p) written.
func (s *Scanner) Write(p []byte) (int, error) {
	if s.re == nil || s.found {
		return len(p), nil
	}

	s.partial.Write(p)
	for !s.found {
		data := s.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			if s.partial.Len() > maxPartial {
				s.scanLine(data)
				s.partial.Reset()
			}
			break
		}
		s.scanLine(data[:i])
		s.partial.Next(i + 1)
	}
	if s.found {
		s.partial.Reset()
	}
	return len(p), nil
}

// Flush scans any trailing output not ended by a newline.
func (s *Scanner) Flush() {
	if s.re == nil || s.found || s.partial.Len() == 0 {
		return
	}
	s.scanLine(s.partial.Bytes())
	s.partial.Reset()
}

// Match returns the captured summary: the first capturing group when the
// pattern has one, otherwise the whole match.
func (s *Scanner) Match() (string, bool) {
	return s.match, s.found
}

func (s *Scanner) scanLine(line []byte) {
	m := s.re.FindSubmatch(bytes.TrimRight(line, "\r"))
	if m == nil {
		return
	}
	s.found = true
	if len(m) > 1 && m[1] != nil {
		s.match = string(m[1])
	} else {
		s.match = string(m[0])
	}
}
