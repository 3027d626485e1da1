package domain

import (
	"github.com/pmezard/go-difflib/difflib"
)

// buildDiff renders a short unified diff between the original and mutated
// source, shown for mutations the test suite failed to catch.
func buildDiff(path string, original, mutated []byte) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: path,
		ToFile:   path + " (mutated)",
		Context:  2,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}

	return text
}
