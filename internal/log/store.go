package log

import (
	"strings"
	"sync"
)

// Severity classifies a line for gutter tinting.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityDebug
	SeverityWarn
	SeverityError
)

// Store holds the ingested log lines. Lines are append-only; indices are
// stable for the lifetime of the store, so bookmarks and share references
// can be keyed by index.
type Store struct {
	mu    sync.RWMutex
	path  string
	lines []string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the source path the store was opened with ("" for stdin).
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Append(line string) {
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
}

func (s *Store) AppendBatch(lines []string) {
	if len(lines) == 0 {
		return
	}
	s.mu.Lock()
	s.lines = append(s.lines, lines...)
	s.mu.Unlock()
}

// GetLine returns the line at index i. The second return is false when the
// index is out of range (not yet loaded), which callers must distinguish
// from a present-but-empty line.
func (s *Store) GetLine(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.lines) {
		return "", false
	}
	return s.lines[i], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Lines returns a snapshot copy of all lines.
func (s *Store) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// LineSeverity reports the severity tint for the line at index i based on
// common level tokens. Unknown or missing lines report SeverityNone.
func (s *Store) LineSeverity(i int) Severity {
	line, ok := s.GetLine(i)
	if !ok {
		return SeverityNone
	}
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "ERROR") || strings.Contains(upper, "FATAL") || strings.Contains(upper, " E "):
		return SeverityError
	case strings.Contains(upper, "WARN") || strings.Contains(upper, " W "):
		return SeverityWarn
	case strings.Contains(upper, "DEBUG") || strings.Contains(upper, " D "):
		return SeverityDebug
	default:
		return SeverityNone
	}
}
