// Package match holds the span model shared by the tokenizer and the
// post-processing rules: typed matches over a single release name, the
// multiset they live in, and the rule engine that rewrites that multiset.
package match

import (
	"fmt"
	"slices"
)

// Match is a typed span recognized inside the input string. A match is
// never mutated once it is part of a set; rules take a Copy, adjust it
// and append the copy as a replacement. Relational queries (Previous,
// Next, At) depend on that identity staying stable.
type Match struct {
	Name  string
	Start int
	End   int
	// Raw is the exact input substring the span covers. Value is the
	// normalized interpretation (int for numbering matches, string for
	// the rest) and may differ from Raw.
	Raw   string
	Value any
	Tags  []string
	// Parent records structural provenance, e.g. the composite marker a
	// season number was carved out of. It is never ownership: removing a
	// child does not remove the parent or vice versa.
	Parent *Match
	// Private marks bookkeeping spans that never surface in the
	// projected result and do not block hole detection.
	Private bool
}

// HasTag reports whether the match carries tag.
func (m *Match) HasTag(tag string) bool {
	return slices.Contains(m.Tags, tag)
}

// Copy returns a shallow copy with its own tag slice, ready to be
// modified and appended as a replacement.
func (m *Match) Copy() *Match {
	c := *m
	c.Tags = slices.Clone(m.Tags)
	return &c
}

// Int returns the match value as an int, or 0 when the value is not an
// int. Numbering matches (season, episode, absolute_episode, year,
// version, part, episode_count) always carry int values.
func (m *Match) Int() int {
	if v, ok := m.Value.(int); ok {
		return v
	}
	return 0
}

// Str returns the match value as a string, falling back to Raw when the
// value is not a string.
func (m *Match) Str() string {
	if v, ok := m.Value.(string); ok {
		return v
	}
	return m.Raw
}

func (m *Match) String() string {
	return fmt.Sprintf("%s[%d:%d]=%v", m.Name, m.Start, m.End, m.Value)
}

func (m *Match) overlaps(start, end int) bool {
	return m.Start < end && start < m.End
}

// Predicate filters matches in relational queries.
type Predicate func(*Match) bool

// Public reports whether a match takes part in the projected result.
// Most relational lookups in rules want it, so it is predefined here.
func Public(m *Match) bool {
	return !m.Private
}

// Named returns a predicate selecting matches with one of the given
// names.
func Named(names ...string) Predicate {
	return func(m *Match) bool {
		return slices.Contains(names, m.Name)
	}
}

// Hole is an unmatched gap between two offsets, derived on demand by
// Matches.Holes and never stored. Raw is the literal substring of the
// gap.
type Hole struct {
	Start int
	End   int
	Raw   string
}
