package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"mutor.dev/pkg/mutor/internal/adapter"
	m "mutor.dev/pkg/mutor/internal/model"
)

// ErrFatalTestStatus aborts the whole campaign: the test runner failed to
// produce a verdict, so the remaining classifications would be
// untrustworthy. It is never retried.
var ErrFatalTestStatus = errors.New("fatal test runner failure")

// DefaultMaxMessageLength bounds the mutation text rendered into result
// messages. Zero disables truncation.
const DefaultMaxMessageLength = 80

// Applicator drives the per-mutation pipeline: write one mutated variant of
// the file to disk, run the test suite, classify the outcome and build the
// result message. At most one mutated version of a file exists on disk at
// any instant; every write starts from the original source snapshot, and
// the orchestrator restores the original as the file pipeline's finalizer.
type Applicator struct {
	fs               adapter.SourceFSAdapter
	runner           adapter.TestRunnerAdapter
	maxMessageLength int
	basePath         m.Path
}

// NewApplicator constructs an Applicator. maxMessageLength bounds rendered
// mutation text (0 = unlimited); basePath only shortens displayed paths.
func NewApplicator(fs adapter.SourceFSAdapter, runner adapter.TestRunnerAdapter, maxMessageLength int, basePath m.Path) *Applicator {
	return &Applicator{
		fs:               fs,
		runner:           runner,
		maxMessageLength: maxMessageLength,
		basePath:         basePath,
	}
}

// Test processes one filtered-through mutation. index is the 1-based
// position among the file's generated mutations, used for progress logging.
// The returned record carries the outcome; a Fatal test status surfaces as
// an error wrapping ErrFatalTestStatus after the record was built.
func (a *Applicator) Test(
	ctx context.Context,
	file m.Path,
	source []byte,
	mu m.Mutation,
	index, total int,
	survivors *SurvivorSet,
	skipNested bool,
) (m.MutationRecord, error) {
	percent := int(math.Round(float64(index) / float64(total) * 100))
	displayPath := file.Shorten(a.basePath)
	slog.Info("Testing mutation", "file", displayPath, "progress", fmt.Sprintf("%d%%", percent), "id", mu.ID)

	if skipNested && survivors.IsNested(mu) {
		slog.Info("Not tested because the mutation is inside an already surviving mutation",
			"file", displayPath, "line", mu.Line, "column", mu.Column+1)

		return m.MutationRecord{Mutation: mu, Outcome: m.OutcomeUntestedNested}, nil
	}

	mutated := mu.Apply(source)
	if err := a.fs.WriteFile(ctx, file, mutated, 0o600); err != nil {
		return m.MutationRecord{}, fmt.Errorf("failed to write mutant %s: %w", mu.ID, err)
	}

	status, runErr := a.runner.Run(ctx)

	record := m.MutationRecord{
		Mutation: mu,
		Message:  a.buildMessage(displayPath, mu, source, status),
	}

	switch status {
	case m.Killed:
		record.Outcome = m.OutcomeKilled
	case m.Survived:
		record.Outcome = m.OutcomeSurvived
		record.Diff = buildDiff(string(displayPath), source, mutated)
		survivors.Record(mu)
		slog.Warn(record.Message)
	case m.Fatal:
		slog.Error(record.Message, "file", displayPath, "error", runErr)

		return record, fmt.Errorf("%w while testing %s: %s", ErrFatalTestStatus, displayPath, record.Message)
	}

	return record, nil
}

// buildMessage renders the per-mutation result line, e.g.
// "pkg/a.go:3:7 Replaced a + b with a - b -> survived".
func (a *Applicator) buildMessage(displayPath m.Path, mu m.Mutation, source []byte, status m.TestStatus) string {
	original := truncateText(mu.Span(source), a.maxMessageLength)

	location := fmt.Sprintf("%s:%d:%d", displayPath, mu.Line, mu.Column+1)

	if mu.IsRemoval() {
		return fmt.Sprintf("%s Removed %s -> %s", location, original, status)
	}

	replacement := truncateText(mu.Replacement, a.maxMessageLength)

	return fmt.Sprintf("%s Replaced %s with %s -> %s", location, original, replacement, status)
}

// truncateText collapses whitespace runs and, when the text exceeds max,
// keeps its first and last halves joined by " ... ". max <= 0 disables
// truncation.
func truncateText(text string, max int) string {
	collapsed := strings.Join(strings.Fields(text), " ")

	// Length and cut points are measured in runes so a multibyte
	// character never gets split.
	runes := []rune(collapsed)
	if max <= 0 || len(runes) <= max {
		return collapsed
	}

	keep := max / 2

	return string(runes[:keep]) + " ... " + string(runes[len(runes)-keep:])
}
