// Package mutagens provides the built-in mutation rules of the Go source
// generator. Each rule emits candidates described purely by byte spans and
// replacement text, so the engine downstream never needs to understand the
// language grammar.
package mutagens

import (
	"go/token"

	m "mutor.dev/pkg/mutor/internal/model"
)

// Candidate is one possible edit found by a mutation rule. Begin and End
// are byte offsets into the file's source; Column is zero-based.
type Candidate struct {
	Kind        m.MutationType
	Begin       int
	End         int
	Line        int
	Column      int
	Replacement string
}

// tokenCandidate builds a candidate that replaces the token starting at pos
// with the given replacement text.
func tokenCandidate(kind m.MutationType, fset *token.FileSet, pos token.Pos, original token.Token, replacement token.Token) Candidate {
	position := fset.Position(pos)

	return Candidate{
		Kind:        kind,
		Begin:       position.Offset,
		End:         position.Offset + len(original.String()),
		Line:        position.Line,
		Column:      position.Column - 1,
		Replacement: replacement.String(),
	}
}

// alternatives returns every operator from ops except the original.
func alternatives(original token.Token, ops []token.Token) []token.Token {
	alts := make([]token.Token, 0, len(ops)-1)

	for _, op := range ops {
		if op != original {
			alts = append(alts, op)
		}
	}

	return alts
}
