package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Shorten returns the path relative to base when it lies underneath it.
// It is used only for display; the full path is kept for all file access.
func (p Path) Shorten(base Path) Path {
	if base == "" {
		return p
	}

	rel, err := filepath.Rel(string(base), string(p))
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}

	return Path(rel)
}
