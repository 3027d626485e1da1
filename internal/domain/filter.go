// Package domain contains the core mutation testing pipeline.
package domain

import (
	"fmt"
	"regexp"

	m "mutor.dev/pkg/mutor/internal/model"
)

// FilterDecision is the verdict of the pre-test filter for one mutation.
type FilterDecision int

const (
	// FilterProceed lets the mutation continue towards testing.
	FilterProceed FilterDecision = iota
	// FilterDiscard drops the mutation because its replacement text matched
	// a discard rule. Discarded mutations only count towards the total.
	FilterDiscard
	// FilterIgnore drops the mutation because the source span it would
	// replace matched an ignore rule.
	FilterIgnore
)

// Filter decides, before any test run is spent, whether a mutation is
// discarded or ignored. Discard rules are evaluated first; a mutation
// matching both kinds is counted as discarded, never as ignored.
type Filter struct {
	discard []*regexp.Regexp
	ignore  []*regexp.Regexp
}

// NewFilter compiles the configured patterns into a Filter. String patterns
// are anchored so they must match the whole text.
func NewFilter(discard, ignore []string) (*Filter, error) {
	discardRes, err := compileAnchored(discard)
	if err != nil {
		return nil, fmt.Errorf("invalid discard pattern: %w", err)
	}

	ignoreRes, err := compileAnchored(ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore pattern: %w", err)
	}

	return &Filter{discard: discardRes, ignore: ignoreRes}, nil
}

// NewFilterFromRegexps builds a Filter from pre-compiled expressions, used
// when the caller configures patterns programmatically. The expressions are
// applied as-is, without anchoring.
func NewFilterFromRegexps(discard, ignore []*regexp.Regexp) *Filter {
	return &Filter{discard: discard, ignore: ignore}
}

// Classify returns the filter verdict for a mutation against the original
// source snapshot of its file.
func (f *Filter) Classify(mu m.Mutation, source []byte) FilterDecision {
	for _, re := range f.discard {
		if re.MatchString(mu.Replacement) {
			return FilterDiscard
		}
	}

	span := mu.Span(source)
	for _, re := range f.ignore {
		if re.MatchString(span) {
			return FilterIgnore
		}
	}

	return FilterProceed
}

func compileAnchored(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, err
		}

		res = append(res, re)
	}

	return res, nil
}
