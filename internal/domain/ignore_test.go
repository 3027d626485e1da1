package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	m "mutor.dev/pkg/mutor/internal/model"
)

func TestParseIgnoreDirective(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		matched bool
		all     bool
		kinds   []string
	}{
		{name: "not a directive", comment: "// just a comment", matched: false},
		{name: "bare directive ignores all", comment: "// mutor:ignore", matched: true, all: true},
		{name: "single category", comment: "// mutor:ignore arithmetic", matched: true, kinds: []string{"arithmetic"}},
		{name: "multiple categories", comment: "// mutor:ignore arithmetic, boolean", matched: true, kinds: []string{"arithmetic", "boolean"}},
		{name: "block comment", comment: "/* mutor:ignore */", matched: true, all: true},
		{name: "case insensitive kinds", comment: "// mutor:ignore ARITHMETIC", matched: true, kinds: []string{"arithmetic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := parseIgnoreDirective(tt.comment)
			assert.Equal(t, tt.matched, ok)

			if !tt.matched {
				return
			}

			assert.Equal(t, tt.all, rule.all)

			for _, kind := range tt.kinds {
				assert.True(t, rule.ignores(m.MutationType(kind)))
			}
		})
	}
}

func TestIgnoreRule_Ignores(t *testing.T) {
	all := ignoreRule{all: true}
	assert.True(t, all.ignores(m.MutationArithmetic))

	scoped := ignoreRule{kinds: map[string]struct{}{"boolean": {}}}
	assert.True(t, scoped.ignores(m.MutationBoolean))
	assert.False(t, scoped.ignores(m.MutationArithmetic))

	var empty ignoreRule
	assert.False(t, empty.ignores(m.MutationArithmetic))
}

func TestMergeRules(t *testing.T) {
	a := ignoreRule{kinds: map[string]struct{}{"boolean": {}}}
	b := ignoreRule{kinds: map[string]struct{}{"branch": {}}}

	merged := mergeRules(a, b)
	assert.True(t, merged.ignores(m.MutationBoolean))
	assert.True(t, merged.ignores(m.MutationBranch))

	assert.True(t, mergeRules(a, ignoreRule{all: true}).all)
}
