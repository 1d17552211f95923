package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"
)

// ExprPrefix marks a pattern as a govaluate expression over {line, text}
// instead of a regular expression, e.g. `expr:line > 100 && text =~ 'retry'`.
const ExprPrefix = "expr:"

// Filter is one submitted filter pattern. Filters combine with AND: a line
// is visible only if it satisfies every active filter.
type Filter struct {
	Pattern       string `json:"pattern"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
	Inverted      bool   `json:"inverted,omitempty"`
}

// Matcher is a compiled Filter.
type Matcher struct {
	filter Filter
	re     *regexp.Regexp
	expr   *govaluate.EvaluableExpression
}

// Compile validates and compiles a filter pattern.
func Compile(f Filter) (*Matcher, error) {
	if strings.HasPrefix(f.Pattern, ExprPrefix) {
		expr, err := govaluate.NewEvaluableExpression(strings.TrimPrefix(f.Pattern, ExprPrefix))
		if err != nil {
			return nil, fmt.Errorf("compile filter expression: %w", err)
		}
		return &Matcher{filter: f, expr: expr}, nil
	}

	pattern := f.Pattern
	if !f.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile filter pattern: %w", err)
	}
	return &Matcher{filter: f, re: re}, nil
}

// Valid reports whether pattern would compile. It is the default validator
// for the search bar.
func Valid(pattern string) bool {
	if pattern == "" {
		return true
	}
	_, err := Compile(Filter{Pattern: pattern})
	return err == nil
}

// Match reports whether the line at index idx with the given text passes
// this filter, honoring inversion.
func (m *Matcher) Match(idx int, text string) bool {
	matched := m.rawMatch(idx, text)
	if m.filter.Inverted {
		return !matched
	}
	return matched
}

func (m *Matcher) rawMatch(idx int, text string) bool {
	if m.expr != nil {
		result, err := m.expr.Evaluate(map[string]any{
			"line": idx,
			"text": text,
		})
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		return ok && b
	}
	return m.re.MatchString(text)
}

// Set is the active filter list with its compiled matchers.
type Set struct {
	matchers []*Matcher
}

// NewSet compiles all filters, skipping any that fail to compile (invalid
// filters never reach the set through the search bar, but persisted state
// from older versions may carry them).
func NewSet(filters []Filter) *Set {
	s := &Set{}
	for _, f := range filters {
		if m, err := Compile(f); err == nil {
			s.matchers = append(s.matchers, m)
		}
	}
	return s
}

// Empty reports whether no filters are active.
func (s *Set) Empty() bool {
	return len(s.matchers) == 0
}

func (s *Set) Match(idx int, text string) bool {
	for _, m := range s.matchers {
		if !m.Match(idx, text) {
			return false
		}
	}
	return true
}
