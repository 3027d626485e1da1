package mutagens

import (
	"go/ast"
	"go/token"

	m "mutor.dev/pkg/mutor/internal/model"
)

// GenerateBranchCandidates empties conditional and loop bodies. The
// resulting spans enclose every finer-grained candidate inside the block,
// which makes them the parents for nested-mutation bookkeeping.
func GenerateBranchCandidates(n ast.Node, fset *token.FileSet) []Candidate {
	switch stmt := n.(type) {
	case *ast.IfStmt:
		candidates := blockRemoval(stmt.Body, fset)
		if elseBlock, ok := stmt.Else.(*ast.BlockStmt); ok {
			candidates = append(candidates, blockRemoval(elseBlock, fset)...)
		}

		return candidates
	case *ast.ForStmt:
		return blockRemoval(stmt.Body, fset)
	case *ast.RangeStmt:
		return blockRemoval(stmt.Body, fset)
	}

	return nil
}

// blockRemoval deletes everything between the block's braces.
func blockRemoval(block *ast.BlockStmt, fset *token.FileSet) []Candidate {
	if block == nil || len(block.List) == 0 {
		return nil
	}

	open := fset.Position(block.Lbrace)
	closing := fset.Position(block.Rbrace)

	return []Candidate{{
		Kind:        m.MutationBranch,
		Begin:       open.Offset + 1,
		End:         closing.Offset,
		Line:        open.Line,
		Column:      open.Column - 1,
		Replacement: "",
	}}
}
