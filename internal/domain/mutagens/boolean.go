package mutagens

import (
	"go/ast"
	"go/token"

	m "mutor.dev/pkg/mutor/internal/model"
)

const (
	trueStr  = "true"
	falseStr = "false"
)

// GenerateBooleanCandidates flips boolean literals (true <-> false).
func GenerateBooleanCandidates(n ast.Node, fset *token.FileSet) []Candidate {
	ident, ok := n.(*ast.Ident)
	if !ok || !isBooleanLiteral(ident.Name) {
		return nil
	}

	position := fset.Position(ident.Pos())

	return []Candidate{{
		Kind:        m.MutationBoolean,
		Begin:       position.Offset,
		End:         position.Offset + len(ident.Name),
		Line:        position.Line,
		Column:      position.Column - 1,
		Replacement: flipBoolean(ident.Name),
	}}
}

func isBooleanLiteral(name string) bool {
	return name == trueStr || name == falseStr
}

func flipBoolean(original string) string {
	if original == trueStr {
		return falseStr
	}

	return trueStr
}
