package mutagens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLogicalCandidates(t *testing.T) {
	tests := []struct {
		name        string
		op          string
		replacement string
	}{
		{name: "and becomes or", op: "&&", replacement: "||"},
		{name: "or becomes and", op: "||", replacement: "&&"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package p\n\nfunc f(a, b bool) bool {\n\treturn a " + tt.op + " b\n}\n"

			candidates := collect(t, src, GenerateLogicalCandidates)
			require.Len(t, candidates, 1)

			assert.Equal(t, tt.op, src[candidates[0].Begin:candidates[0].End])
			assert.Equal(t, tt.replacement, candidates[0].Replacement)
			assert.Contains(t, applied(src, candidates[0]), "a "+tt.replacement+" b")
		})
	}
}

func TestGenerateLogicalCandidates_SkipsOtherOperators(t *testing.T) {
	src := `package p

func f(a, b bool) bool {
	return a == b
}
`
	assert.Empty(t, collect(t, src, GenerateLogicalCandidates))
}
