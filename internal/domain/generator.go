package domain

import (
	"context"
	"crypto/sha256"
	"fmt"
	"go/ast"
	"go/token"
	"sort"

	"mutor.dev/pkg/mutor/internal/adapter"
	"mutor.dev/pkg/mutor/internal/domain/mutagens"
	m "mutor.dev/pkg/mutor/internal/model"
)

// Generator produces the ordered sequence of candidate mutations for one
// source file. The pipeline consumes the descriptors as opaque spans; this
// interface is the only place that understands the target language.
type Generator interface {
	Generate(ctx context.Context, file m.Path, source []byte, exclude []string) ([]m.Mutation, error)
}

// DefaultMutationTypes lists the built-in rules in evaluation order.
var DefaultMutationTypes = []m.MutationType{
	m.MutationBranch,
	m.MutationArithmetic,
	m.MutationComparison,
	m.MutationLogical,
	m.MutationBoolean,
}

var mutationRules = map[m.MutationType]func(ast.Node, *token.FileSet) []mutagens.Candidate{
	m.MutationBranch:     mutagens.GenerateBranchCandidates,
	m.MutationArithmetic: mutagens.GenerateArithmeticCandidates,
	m.MutationComparison: mutagens.GenerateComparisonCandidates,
	m.MutationLogical:    mutagens.GenerateLogicalCandidates,
	m.MutationBoolean:    mutagens.GenerateBooleanCandidates,
}

type goGenerator struct {
	adapter.GoFileAdapter
}

// NewGoGenerator creates a Generator backed by go/parser and the built-in
// mutagen rules.
func NewGoGenerator(goFileAdapter adapter.GoFileAdapter) Generator {
	return &goGenerator{GoFileAdapter: goFileAdapter}
}

// Generate parses the file once and emits mutations in source order.
// exclude names mutation categories to skip entirely; mutor:ignore comment
// directives suppress generation for a file, function or line.
func (g *goGenerator) Generate(ctx context.Context, file m.Path, source []byte, exclude []string) ([]m.Mutation, error) {
	fset := token.NewFileSet()

	parsed, err := g.Parse(ctx, fset, string(file), source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	ignore := buildIgnoreIndex(parsed, fset)
	excluded := toSet(exclude)

	var candidates []mutagens.Candidate

	for _, kind := range DefaultMutationTypes {
		if _, skip := excluded[string(kind)]; skip {
			continue
		}

		if ignore.file.ignores(kind) {
			continue
		}

		candidates = append(candidates, collectCandidates(kind, parsed, fset, ignore)...)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Begin != candidates[j].Begin {
			return candidates[i].Begin < candidates[j].Begin
		}

		if candidates[i].End != candidates[j].End {
			return candidates[i].End < candidates[j].End
		}

		return candidates[i].Replacement < candidates[j].Replacement
	})

	return buildMutations(file, source, candidates), nil
}

func collectCandidates(kind m.MutationType, parsed *ast.File, fset *token.FileSet, ignore ignoreIndex) []mutagens.Candidate {
	rule, ok := mutationRules[kind]
	if !ok {
		return nil
	}

	var candidates []mutagens.Candidate

	ast.Inspect(parsed, func(n ast.Node) bool {
		if n == nil {
			return true
		}

		// Function-level ignore skips the whole body for this category.
		if fd, ok := n.(*ast.FuncDecl); ok {
			if funcRule, ok := ignore.funcByPos[fd.Pos()]; ok && funcRule.ignores(kind) {
				return false
			}
		}

		line := fset.PositionFor(n.Pos(), true).Line
		if lineRule, ok := ignore.line[line]; ok && lineRule.ignores(kind) {
			return true
		}

		candidates = append(candidates, rule(n, fset)...)

		return true
	})

	return candidates
}

// buildMutations assigns identifiers and links each mutation to the
// smallest candidate span strictly enclosing it, if any. Span containment
// is what makes the nested-survivor optimization sound: a finer mutation
// inside a region no test observes cannot be more observable.
func buildMutations(file m.Path, source []byte, candidates []mutagens.Candidate) []m.Mutation {
	mutations := make([]m.Mutation, 0, len(candidates))

	for _, c := range candidates {
		if c.Begin < 0 || c.End > len(source) || c.Begin > c.End {
			continue
		}

		mutations = append(mutations, m.Mutation{
			ID:          mutationID(file, c),
			Type:        c.Kind,
			File:        file,
			Begin:       c.Begin,
			End:         c.End,
			Line:        c.Line,
			Column:      c.Column,
			Replacement: c.Replacement,
		})
	}

	for i := range mutations {
		mutations[i].ParentID = findParentID(mutations, i)
	}

	return mutations
}

func findParentID(mutations []m.Mutation, child int) string {
	c := mutations[child]
	parent := -1

	for i, p := range mutations {
		if i == child {
			continue
		}

		strictlyContains := p.Begin <= c.Begin && c.End <= p.End &&
			(p.Begin != c.Begin || p.End != c.End)
		if !strictlyContains {
			continue
		}

		if parent == -1 || mutations[i].End-mutations[i].Begin < mutations[parent].End-mutations[parent].Begin {
			parent = i
		}
	}

	if parent == -1 {
		return ""
	}

	return mutations[parent].ID
}

func mutationID(file m.Path, c mutagens.Candidate) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%d|%s", file, c.Kind, c.Begin, c.End, c.Replacement))

	return fmt.Sprintf("%x", sum)[:12]
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}
