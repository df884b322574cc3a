// Package suggest offers autocomplete for facet values and the keyboard
// state machine used to pick one.
package suggest

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

const (
	// MinQueryLength is the shortest trimmed input that yields suggestions.
	MinQueryLength = 2

	// MaxSuggestions caps the number of suggestions returned.
	MaxSuggestions = 8
)

// Suggester is a fuzzy index over distinct facet values. It is immutable and
// safe for concurrent use.
type Suggester struct {
	values []string
}

// New builds a suggester. Blank and repeated values are dropped.
func New(values []string) *Suggester {
	seen := make(map[string]bool, len(values))
	s := &Suggester{}
	for _, v := range values {
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		s.values = append(s.values, v)
	}
	return s
}

// Len returns the number of indexed values.
func (s *Suggester) Len() int {
	return len(s.values)
}

// Suggest returns the values matching partial, best first, leaving out any
// value in exclude. Inputs shorter than MinQueryLength return nil.
func (s *Suggester) Suggest(partial string, exclude []string) []string {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < MinQueryLength || len(s.values) == 0 {
		return nil
	}

	var out []string
	for _, m := range fuzzy.Find(partial, s.values) {
		if slices.Contains(exclude, m.Str) {
			continue
		}
		out = append(out, m.Str)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
