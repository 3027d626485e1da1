package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "mutor.dev/pkg/mutor/internal/model"
)

var (
	survivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	untestedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	summaryStyle  = lipgloss.NewStyle().Bold(true)
)

// SimpleUI prints pipeline events as plain lines through the cobra command
// output. It is used when stdout is not an interactive terminal.
type SimpleUI struct {
	cmd      *cobra.Command
	basePath m.Path
}

// NewSimpleUI creates a SimpleUI.
func NewSimpleUI(cmd *cobra.Command, basePath m.Path) *SimpleUI {
	return &SimpleUI{cmd: cmd, basePath: basePath}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for the plain printer).
func (s *SimpleUI) Close(_ context.Context) {}

// FileStarted announces the file pipeline.
func (s *SimpleUI) FileStarted(ctx context.Context, file m.Path, mutationCount int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Mutating %s (%d mutations)\n", file, mutationCount)
}

// FileSkipped reports a skipped file and the reason.
func (s *SimpleUI) FileSkipped(ctx context.Context, file m.Path, reason string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s\n", skippedStyle.Render(fmt.Sprintf("Skipping %s: %s", file, reason)))
}

// MutationTested streams one classified mutation. Killed mutations are the
// expected outcome and stay quiet; everything notable is printed as it
// happens so long runs remain observable.
func (s *SimpleUI) MutationTested(ctx context.Context, _, _ int, record m.MutationRecord) {
	if ctx.Err() != nil {
		return
	}

	switch record.Outcome {
	case m.OutcomeSurvived:
		s.printf("%s\n", survivedStyle.Render(record.Message))

		if record.Diff != "" {
			s.printf("%s\n", record.Diff)
		}
	case m.OutcomeUntestedNested:
		mu := record.Mutation
		s.printf("%s\n", untestedStyle.Render(fmt.Sprintf(
			"%s:%d:%d not tested: inside an already surviving mutation",
			mu.File.Shorten(s.basePath), mu.Line, mu.Column+1)))
	case m.OutcomeKilled, m.OutcomeIgnored, m.OutcomeDiscarded:
	}
}

// Summary renders the aggregate stats line and the per-file table.
func (s *SimpleUI) Summary(ctx context.Context, total m.Stats, results []m.FileResult) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s\n\n%s", summaryStyle.Render(total.Summary()), renderStatsTable(s.basePath, total, results))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderStatsTable(basePath m.Path, total m.Stats, results []m.FileResult) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"File", "All", "Ignored", "Untested", "Survived", "Killed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, result := range results {
		stats := result.Stats
		table.Append([]string{
			string(result.File.Shorten(basePath)),
			fmt.Sprintf("%d", stats.All),
			fmt.Sprintf("%d", stats.Ignored),
			fmt.Sprintf("%d", stats.Untested),
			fmt.Sprintf("%d", stats.Survived),
			fmt.Sprintf("%d", stats.Tested()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		fmt.Sprintf("%d", total.All),
		fmt.Sprintf("%d", total.Ignored),
		fmt.Sprintf("%d", total.Untested),
		fmt.Sprintf("%d", total.Survived),
		fmt.Sprintf("%d", total.Tested()),
	})

	table.Render()

	return buffer.String()
}
