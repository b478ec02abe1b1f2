package model

import "sort"

// IDSet is a set of report identifiers.
// Insertion order is irrelevant; Sorted and Diff return ascending
// order, which for valid identifiers is chronological order.
type IDSet struct {
	ids map[ReportID]struct{}
}

// NewIDSet creates an empty IDSet, optionally seeded with identifiers.
func NewIDSet(ids ...ReportID) *IDSet {
	s := &IDSet{ids: make(map[ReportID]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts an identifier into the set. Duplicates are ignored.
func (s *IDSet) Add(id ReportID) {
	s.ids[id] = struct{}{}
}

// Contains reports whether the set holds the identifier.
func (s *IDSet) Contains(id ReportID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s *IDSet) Len() int {
	return len(s.ids)
}

// Sorted returns all identifiers in ascending order.
// Returns an empty (non-nil) slice for an empty set.
func (s *IDSet) Sorted() []ReportID {
	out := make([]ReportID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Diff returns the identifiers present in s but absent from other,
// in ascending order. A nil other behaves as an empty set.
func (s *IDSet) Diff(other *IDSet) []ReportID {
	out := make([]ReportID, 0)
	for id := range s.ids {
		if other == nil || !other.Contains(id) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
