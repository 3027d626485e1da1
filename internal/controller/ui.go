// Package controller provides output adapters for mutation testing progress
// and results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	m "mutor.dev/pkg/mutor/internal/model"
)

// UI receives pipeline events as they happen, so a long run stays
// observable. Implementations can print plain text or drive an interactive
// terminal display.
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)

	// FileStarted announces a file pipeline with its generated mutation count.
	FileStarted(ctx context.Context, file m.Path, mutationCount int)
	// FileSkipped reports a file that contributed nothing to the run.
	FileSkipped(ctx context.Context, file m.Path, reason string)
	// MutationTested streams one classified mutation.
	MutationTested(ctx context.Context, index, total int, record m.MutationRecord)
	// Summary renders the aggregate stats and the per-file table.
	Summary(ctx context.Context, total m.Stats, results []m.FileResult)
}

// NewUI returns the interactive TUI when useTTY is set and the plain
// printer otherwise.
func NewUI(cmd *cobra.Command, basePath m.Path, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout(), basePath)
	}

	return NewSimpleUI(cmd, basePath)
}

// IsTTY reports whether the writer is an interactive terminal rather than a
// redirected file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}
