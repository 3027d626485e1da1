package mutagens

import (
	"go/ast"
	"go/token"

	m "mutor.dev/pkg/mutor/internal/model"
)

var arithmeticOps = []token.Token{token.ADD, token.SUB, token.MUL, token.QUO, token.REM}

// GenerateArithmeticCandidates emits one candidate per alternative
// arithmetic operator for a binary expression node.
func GenerateArithmeticCandidates(n ast.Node, fset *token.FileSet) []Candidate {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok || !isArithmeticOp(binExpr.Op) {
		return nil
	}

	var candidates []Candidate

	for _, op := range alternatives(binExpr.Op, arithmeticOps) {
		candidates = append(candidates, tokenCandidate(m.MutationArithmetic, fset, binExpr.OpPos, binExpr.Op, op))
	}

	return candidates
}

func isArithmeticOp(op token.Token) bool {
	for _, candidate := range arithmeticOps {
		if op == candidate {
			return true
		}
	}

	return false
}
