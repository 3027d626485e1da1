// Package adapter contains infrastructure adapters for the Mutor engine.
package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "mutor.dev/pkg/mutor/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the pipeline relies on.
// It hides direct `os` access so the orchestration logic can be tested
// without touching the disk. The target source file is the single mutable
// shared resource of a file pipeline; only the engine writes it.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// FileExists reports whether path exists and is a regular file.
	FileExists(ctx context.Context, path m.Path) bool

	// FindSourceFiles expands Go-style path arguments into mutable source
	// files. A trailing "..." descends into subdirectories; a plain
	// directory is scanned non-recursively; a file path is taken as-is.
	FindSourceFiles(ctx context.Context, paths []m.Path) ([]m.Path, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter implementation.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// FileExists reports whether path names a regular file.
func (a *LocalSourceFSAdapter) FileExists(ctx context.Context, path m.Path) bool {
	if ctx.Err() != nil {
		return false
	}

	info, err := os.Stat(string(path))

	return err == nil && info.Mode().IsRegular()
}

const recursiveSuffix = "..."

// FindSourceFiles expands path arguments into .go files in a deterministic
// order. Test files, vendored code and hidden or underscore-prefixed
// directories are skipped. An empty argument list means "./...".
func (a *LocalSourceFSAdapter) FindSourceFiles(ctx context.Context, paths []m.Path) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{m.Path("." + string(filepath.Separator) + recursiveSuffix)}
	}

	var sources []m.Path

	seen := make(map[m.Path]struct{})

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root := string(path)
		recursive := false

		if filepath.Base(root) == recursiveSuffix {
			root = filepath.Dir(root)
			recursive = true
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("path error: %w", err)
		}

		if !info.IsDir() {
			sources = appendSource(sources, seen, m.Path(root))
			continue
		}

		err = filepath.WalkDir(root, func(current string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				if current != root && (!recursive || skipDirName(entry.Name())) {
					return filepath.SkipDir
				}

				return nil
			}

			if isMutableSource(current) {
				sources = appendSource(sources, seen, m.Path(current))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	return sources, nil
}

func appendSource(sources []m.Path, seen map[m.Path]struct{}, path m.Path) []m.Path {
	if _, ok := seen[path]; ok {
		return sources
	}

	seen[path] = struct{}{}

	return append(sources, path)
}

func skipDirName(name string) bool {
	if name == "vendor" || name == "testdata" {
		return true
	}

	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func isMutableSource(path string) bool {
	return filepath.Ext(path) == ".go" && !strings.HasSuffix(path, "_test.go")
}
