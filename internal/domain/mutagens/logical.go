package mutagens

import (
	"go/ast"
	"go/token"

	m "mutor.dev/pkg/mutor/internal/model"
)

// GenerateLogicalCandidates swaps && with || and vice versa.
func GenerateLogicalCandidates(n ast.Node, fset *token.FileSet) []Candidate {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	var replacement token.Token

	switch binExpr.Op {
	case token.LAND:
		replacement = token.LOR
	case token.LOR:
		replacement = token.LAND
	default:
		return nil
	}

	return []Candidate{tokenCandidate(m.MutationLogical, fset, binExpr.OpPos, binExpr.Op, replacement)}
}
