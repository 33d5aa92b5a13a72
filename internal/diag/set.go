package diag

import "sort"

// Set is a capped, deduplicating collection of diagnostics. The first
// diagnostic inserted for a key wins; later inserts with the same key are
// ignored regardless of message. Once the cap is reached further inserts are
// rejected and the set is marked truncated.
type Set struct {
	max       int
	byKey     map[Key]struct{}
	items     []Diagnostic
	truncated bool
}

// NewSet creates an empty set holding at most max diagnostics.
// A non-positive max means unbounded.
func NewSet(max int) *Set {
	return &Set{
		max:   max,
		byKey: make(map[Key]struct{}),
	}
}

// Add inserts d unless its key is already present or the cap is reached.
// It reports whether the set changed.
func (s *Set) Add(d Diagnostic) bool {
	if _, dup := s.byKey[d.Key()]; dup {
		return false
	}
	if s.max > 0 && len(s.items) >= s.max {
		s.truncated = true
		return false
	}
	s.byKey[d.Key()] = struct{}{}
	s.items = append(s.items, d)
	return true
}

// AddAll inserts each diagnostic in order and reports how many were added.
func (s *Set) AddAll(ds []Diagnostic) int {
	added := 0
	for _, d := range ds {
		if s.Add(d) {
			added++
		}
	}
	return added
}

// Len returns the number of diagnostics held.
func (s *Set) Len() int { return len(s.items) }

// Truncated reports whether an insert was rejected because the cap was hit.
// A truncated set may under-report: more findings likely exist.
func (s *Set) Truncated() bool { return s.truncated }

// Items returns the diagnostics sorted by (line, column, category).
// The returned slice is a copy and safe for the caller to keep.
func (s *Set) Items() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
