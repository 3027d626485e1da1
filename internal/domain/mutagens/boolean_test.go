package mutagens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "mutor.dev/pkg/mutor/internal/model"
)

func TestGenerateBooleanCandidates(t *testing.T) {
	src := `package p

var enabled = true
`
	candidates := collect(t, src, GenerateBooleanCandidates)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, m.MutationBoolean, c.Kind)
	assert.Equal(t, "false", c.Replacement)
	assert.Equal(t, "true", src[c.Begin:c.End])
	assert.Contains(t, applied(src, c), "var enabled = false")
}

func TestGenerateBooleanCandidates_FalseFlipsToTrue(t *testing.T) {
	src := `package p

var enabled = false
`
	candidates := collect(t, src, GenerateBooleanCandidates)
	require.Len(t, candidates, 1)
	assert.Equal(t, "true", candidates[0].Replacement)
}

func TestGenerateBooleanCandidates_IgnoresOtherIdents(t *testing.T) {
	src := `package p

var truthy = 1
`
	assert.Empty(t, collect(t, src, GenerateBooleanCandidates))
}
