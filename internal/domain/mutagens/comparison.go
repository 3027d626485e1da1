package mutagens

import (
	"go/ast"
	"go/token"

	m "mutor.dev/pkg/mutor/internal/model"
)

// Comparison operators are mutated within their boundary group so the
// replacement stays type-correct: equality swaps with inequality, ordered
// comparisons swap among themselves.
var comparisonGroups = map[token.Token][]token.Token{
	token.EQL: {token.NEQ},
	token.NEQ: {token.EQL},
	token.LSS: {token.LEQ, token.GTR, token.GEQ},
	token.LEQ: {token.LSS, token.GTR, token.GEQ},
	token.GTR: {token.GEQ, token.LSS, token.LEQ},
	token.GEQ: {token.GTR, token.LSS, token.LEQ},
}

// GenerateComparisonCandidates emits candidates replacing a comparison
// operator with its boundary alternatives.
func GenerateComparisonCandidates(n ast.Node, fset *token.FileSet) []Candidate {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	group, ok := comparisonGroups[binExpr.Op]
	if !ok {
		return nil
	}

	var candidates []Candidate

	for _, op := range group {
		candidates = append(candidates, tokenCandidate(m.MutationComparison, fset, binExpr.OpPos, binExpr.Op, op))
	}

	return candidates
}
