// Package model defines the data structures for mutation testing.
package model

// MutationType names the category of a mutation. The engine treats it as an
// opaque label; generators define the available categories.
type MutationType string

const (
	// MutationArithmetic represents arithmetic operator mutations (+, -, *, /, %).
	MutationArithmetic MutationType = "arithmetic"
	// MutationComparison represents comparison operator mutations (==, !=, <, ...).
	MutationComparison MutationType = "comparison"
	// MutationLogical represents logical operator mutations (&&, ||).
	MutationLogical MutationType = "logical"
	// MutationBoolean represents boolean literal mutations (true <-> false).
	MutationBoolean MutationType = "boolean"
	// MutationBranch represents branch-removal mutations (emptying a block).
	MutationBranch MutationType = "branch"
)

// Mutation is one candidate edit to a source file, produced by a generator.
// Begin and End are byte offsets into the original source snapshot taken at
// pipeline start; an empty Replacement means the span is deleted. ParentID,
// when non-empty, names an enclosing mutation this one is nested inside.
type Mutation struct {
	ID          string       `yaml:"id"`
	ParentID    string       `yaml:"parent_id,omitempty"`
	Type        MutationType `yaml:"type"`
	File        Path         `yaml:"file"`
	Begin       int          `yaml:"begin"`
	End         int          `yaml:"end"`
	Line        int          `yaml:"line"`
	Column      int          `yaml:"column"`
	Replacement string       `yaml:"replacement"`
}

// Apply renders the mutation applied to the given original source.
func (mu Mutation) Apply(source []byte) []byte {
	mutated := make([]byte, 0, len(source)-(mu.End-mu.Begin)+len(mu.Replacement))
	mutated = append(mutated, source[:mu.Begin]...)
	mutated = append(mutated, mu.Replacement...)
	mutated = append(mutated, source[mu.End:]...)

	return mutated
}

// Span returns the original source text the mutation replaces.
func (mu Mutation) Span(source []byte) string {
	if mu.Begin < 0 || mu.End > len(source) || mu.Begin > mu.End {
		return ""
	}

	return string(source[mu.Begin:mu.End])
}

// IsRemoval reports whether the mutation deletes its span outright.
func (mu Mutation) IsRemoval() bool {
	return mu.Replacement == ""
}
