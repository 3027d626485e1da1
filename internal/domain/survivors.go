package domain

import m "mutor.dev/pkg/mutor/internal/model"

// SurvivorSet records the identifiers of mutations that survived testing.
// Once a region is shown not to be caught by any test, finer-grained
// mutations strictly inside it cannot be more observable, so testing them
// is redundant. The set is scoped to one run and grows monotonically; it is
// threaded explicitly through the orchestrator instead of living in a
// package-level variable.
type SurvivorSet struct {
	ids map[string]struct{}
}

// NewSurvivorSet returns an empty SurvivorSet.
func NewSurvivorSet() *SurvivorSet {
	return &SurvivorSet{ids: make(map[string]struct{})}
}

// IsNested reports whether mu is nested inside a known-surviving mutation.
func (s *SurvivorSet) IsNested(mu m.Mutation) bool {
	if mu.ParentID == "" {
		return false
	}

	_, ok := s.ids[mu.ParentID]

	return ok
}

// Record inserts mu's identifier. It is called exactly once per mutation,
// only for mutations that tested as survived.
func (s *SurvivorSet) Record(mu m.Mutation) {
	s.ids[mu.ID] = struct{}{}
}

// Len returns the number of recorded survivors.
func (s *SurvivorSet) Len() int {
	return len(s.ids)
}
