package match

import (
	"cmp"
	"slices"
	"sort"
)

// Matches is the per-parse multiset of spans over one input string.
// Items are kept ordered by start offset, then end offset, then
// insertion order. Duplicates (same name, span and value) are legal;
// consumers that need uniqueness dedupe at projection time.
//
// Matches is not safe for concurrent use. Each parse builds its own
// set, which is what makes the surrounding parser concurrency-safe.
type Matches struct {
	input string
	items []*Match
}

// NewMatches returns an empty set over input.
func NewMatches(input string) *Matches {
	return &Matches{input: input}
}

// Input returns the string the spans refer to.
func (ms *Matches) Input() string {
	return ms.input
}

// Len returns the number of matches in the set, private ones included.
func (ms *Matches) Len() int {
	return len(ms.items)
}

// All returns the matches in position order. The slice is a copy; the
// matches are not.
func (ms *Matches) All() []*Match {
	return slices.Clone(ms.items)
}

// Append adds matches to the set, keeping position order. Appending a
// match whose span falls outside the input is a programming error and
// is ignored silently only for the empty case (nil matches).
func (ms *Matches) Append(matches ...*Match) {
	for _, m := range matches {
		if m == nil {
			continue
		}
		ms.items = append(ms.items, m)
	}
	sort.SliceStable(ms.items, func(i, j int) bool {
		if ms.items[i].Start != ms.items[j].Start {
			return ms.items[i].Start < ms.items[j].Start
		}
		return ms.items[i].End < ms.items[j].End
	})
}

// Remove deletes the given matches from the set, compared by identity.
// Removing a match that is not in the set is a no-op.
func (ms *Matches) Remove(matches ...*Match) {
	if len(matches) == 0 {
		return
	}
	ms.items = slices.DeleteFunc(ms.items, func(m *Match) bool {
		return slices.Contains(matches, m)
	})
}

func (ms *Matches) filter(keep Predicate, preds []Predicate) []*Match {
	var out []*Match
next:
	for _, m := range ms.items {
		if keep != nil && !keep(m) {
			continue
		}
		for _, p := range preds {
			if !p(m) {
				continue next
			}
		}
		out = append(out, m)
	}
	return out
}

// Named returns all matches with the given name, in position order.
func (ms *Matches) Named(name string, preds ...Predicate) []*Match {
	return ms.filter(func(m *Match) bool { return m.Name == name }, preds)
}

// FirstNamed returns the first match with the given name, or nil.
func (ms *Matches) FirstNamed(name string, preds ...Predicate) *Match {
	if found := ms.Named(name, preds...); len(found) > 0 {
		return found[0]
	}
	return nil
}

// Tagged returns all matches carrying the given tag, in position order.
func (ms *Matches) Tagged(tag string, preds ...Predicate) []*Match {
	return ms.filter(func(m *Match) bool { return m.HasTag(tag) }, preds)
}

// Previous returns the nearest match ending at or before m starts, or
// nil when no such match exists.
func (ms *Matches) Previous(m *Match, preds ...Predicate) *Match {
	candidates := ms.filter(func(c *Match) bool {
		return c != m && c.End <= m.Start
	}, preds)
	if len(candidates) == 0 {
		return nil
	}
	return slices.MaxFunc(candidates, func(a, b *Match) int {
		if a.End != b.End {
			return cmp.Compare(a.End, b.End)
		}
		return cmp.Compare(a.Start, b.Start)
	})
}

// Next returns the nearest match starting at or after m ends, or nil
// when no such match exists.
func (ms *Matches) Next(m *Match, preds ...Predicate) *Match {
	candidates := ms.filter(func(c *Match) bool {
		return c != m && c.Start >= m.End
	}, preds)
	if len(candidates) == 0 {
		return nil
	}
	return slices.MinFunc(candidates, func(a, b *Match) int {
		if a.Start != b.Start {
			return cmp.Compare(a.Start, b.Start)
		}
		return cmp.Compare(a.End, b.End)
	})
}

// At returns all matches whose span intersects m's span, m excluded.
func (ms *Matches) At(m *Match, preds ...Predicate) []*Match {
	return ms.filter(func(c *Match) bool {
		return c != m && c.overlaps(m.Start, m.End)
	}, preds)
}

// Within returns all matches fully contained in [start, end).
func (ms *Matches) Within(start, end int, preds ...Predicate) []*Match {
	return ms.filter(func(c *Match) bool {
		return c.Start >= start && c.End <= end
	}, preds)
}

// Holes returns the sub-ranges of [start, end) not covered by any
// non-private match, in position order. Private matches never block a
// hole, so the byte under a bookkeeping marker still reads as
// unmatched text. Empty gaps are skipped.
func (ms *Matches) Holes(start, end int) []Hole {
	if start < 0 {
		start = 0
	}
	if end > len(ms.input) {
		end = len(ms.input)
	}
	if start >= end {
		return nil
	}

	type span struct{ s, e int }
	var covered []span
	for _, m := range ms.items {
		if m.Private || !m.overlaps(start, end) {
			continue
		}
		covered = append(covered, span{max(m.Start, start), min(m.End, end)})
	}
	sort.Slice(covered, func(i, j int) bool { return covered[i].s < covered[j].s })

	var holes []Hole
	pos := start
	for _, c := range covered {
		if c.s > pos {
			holes = append(holes, Hole{Start: pos, End: c.s, Raw: ms.input[pos:c.s]})
		}
		if c.e > pos {
			pos = c.e
		}
	}
	if pos < end {
		holes = append(holes, Hole{Start: pos, End: end, Raw: ms.input[pos:end]})
	}
	return holes
}
