package mutagens

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

// collect parses src and gathers the candidates produced by rule for every
// AST node.
func collect(t *testing.T, src string, rule func(ast.Node, *token.FileSet) []Candidate) []Candidate {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)

	var candidates []Candidate

	ast.Inspect(file, func(n ast.Node) bool {
		if n != nil {
			candidates = append(candidates, rule(n, fset)...)
		}

		return true
	})

	return candidates
}

// applied renders a candidate applied to src.
func applied(src string, c Candidate) string {
	return src[:c.Begin] + c.Replacement + src[c.End:]
}
