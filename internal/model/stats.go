package model

import "fmt"

// Stats accumulates mutation counters for one file or for the whole run.
// All counts every generated mutation, including discarded and ignored ones.
type Stats struct {
	All      int `yaml:"all"`
	Ignored  int `yaml:"ignored"`
	Untested int `yaml:"untested"`
	Survived int `yaml:"survived"`
}

// Add merges the counters of other into s.
func (s *Stats) Add(other Stats) {
	s.All += other.All
	s.Ignored += other.Ignored
	s.Untested += other.Untested
	s.Survived += other.Survived
}

// Tested returns the number of mutations that were tested and killed.
func (s Stats) Tested() int {
	return s.All - s.Ignored - s.Untested - s.Survived
}

// Unignored returns the number of mutations considered for testing.
func (s Stats) Unignored() int {
	return s.All - s.Ignored
}

// TestedPercent returns the tested fraction as a whole percentage,
// rounded down. A run with no unignored mutations counts as fully tested.
func (s Stats) TestedPercent() int {
	unignored := s.Unignored()
	if unignored == 0 {
		return 100
	}

	return s.Tested() * 100 / unignored
}

// Summary renders the aggregate stats line.
func (s Stats) Summary() string {
	return fmt.Sprintf("%d of %d unignored mutations are tested (%d%%). %d mutations were ignored.",
		s.Tested(), s.Unignored(), s.TestedPercent(), s.Ignored)
}
