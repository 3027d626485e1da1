package domain

import (
	"go/ast"
	"go/token"
	"strings"

	m "mutor.dev/pkg/mutor/internal/model"
)

// ignoreDirective is the comment marker that suppresses mutation generation,
// optionally followed by a comma-separated list of category names.
const ignoreDirective = "mutor:ignore"

type ignoreRule struct {
	all   bool
	kinds map[string]struct{}
}

func (r ignoreRule) ignores(kind m.MutationType) bool {
	if r.all {
		return true
	}

	if len(r.kinds) == 0 {
		return false
	}

	_, ok := r.kinds[strings.ToLower(string(kind))]

	return ok
}

func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.TrimSpace(commentText)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	}

	if !strings.HasPrefix(s, ignoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(s, ignoreDirective))
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	rule := ignoreRule{kinds: make(map[string]struct{})}

	for _, part := range strings.Split(rest, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name != "" {
			rule.kinds[name] = struct{}{}
		}
	}

	if len(rule.kinds) == 0 {
		return ignoreRule{all: true}, true
	}

	return rule, true
}

// ignoreIndex resolves which directives cover a given node: file-wide from
// the package doc comment, per function from the func doc comment, per line
// from a trailing comment or a comment on the line directly above.
type ignoreIndex struct {
	file      ignoreRule
	funcByPos map[token.Pos]ignoreRule
	line      map[int]ignoreRule
}

func buildIgnoreIndex(file *ast.File, fset *token.FileSet) ignoreIndex {
	idx := ignoreIndex{
		funcByPos: make(map[token.Pos]ignoreRule),
		line:      make(map[int]ignoreRule),
	}

	docGroups := map[*ast.CommentGroup]struct{}{}

	if file.Doc != nil {
		docGroups[file.Doc] = struct{}{}
		idx.file = groupRule(file.Doc)
	}

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}

		docGroups[fd.Doc] = struct{}{}

		if rule := groupRule(fd.Doc); rule.all || len(rule.kinds) > 0 {
			idx.funcByPos[fd.Pos()] = rule
		}
	}

	for _, group := range file.Comments {
		if _, ok := docGroups[group]; ok {
			continue
		}

		for _, comment := range group.List {
			rule, ok := parseIgnoreDirective(comment.Text)
			if !ok {
				continue
			}

			line := fset.Position(comment.Pos()).Line
			idx.line[line] = mergeRules(idx.line[line], rule)
			idx.line[line+1] = mergeRules(idx.line[line+1], rule)
		}
	}

	return idx
}

func groupRule(group *ast.CommentGroup) ignoreRule {
	var merged ignoreRule

	for _, comment := range group.List {
		if rule, ok := parseIgnoreDirective(comment.Text); ok {
			merged = mergeRules(merged, rule)
		}
	}

	return merged
}

func mergeRules(dst, src ignoreRule) ignoreRule {
	if dst.all || src.all {
		return ignoreRule{all: true}
	}

	if len(src.kinds) == 0 {
		return dst
	}

	if dst.kinds == nil {
		dst.kinds = make(map[string]struct{}, len(src.kinds))
	}

	for kind := range src.kinds {
		dst.kinds[kind] = struct{}{}
	}

	return dst
}
