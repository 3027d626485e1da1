package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "mutor.dev/pkg/mutor/internal/model"
)

const maxEventLines = 6

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// TUI drives an interactive Bubble Tea display for mutation testing runs.
// Pipeline events arrive through the UI interface and are forwarded to the
// running program as messages.
type TUI struct {
	output   io.Writer
	basePath m.Path
	program  *tea.Program
	done     chan struct{}
	summary  string
}

// NewTUI creates a TUI writing to output.
func NewTUI(output io.Writer, basePath m.Path) *TUI {
	return &TUI{output: output, basePath: basePath}
}

type fileStartedMsg struct {
	file  m.Path
	total int
}

type fileSkippedMsg struct {
	file   m.Path
	reason string
}

type mutationTestedMsg struct {
	index  int
	total  int
	record m.MutationRecord
}

type closeMsg struct{}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.done = make(chan struct{})
	t.program = tea.NewProgram(newRunModel(t.basePath), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close stops the program, waits for it to finish and prints the final
// summary as plain text so it stays in the scrollback.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(closeMsg{})
	<-t.done

	if t.summary != "" {
		_, _ = fmt.Fprint(t.output, t.summary)
	}
}

// FileStarted forwards the file announcement to the display.
func (t *TUI) FileStarted(_ context.Context, file m.Path, mutationCount int) {
	t.send(fileStartedMsg{file: file, total: mutationCount})
}

// FileSkipped forwards a skip notice to the display.
func (t *TUI) FileSkipped(_ context.Context, file m.Path, reason string) {
	t.send(fileSkippedMsg{file: file, reason: reason})
}

// MutationTested forwards one classified mutation to the display.
func (t *TUI) MutationTested(_ context.Context, index, total int, record m.MutationRecord) {
	t.send(mutationTestedMsg{index: index, total: total, record: record})
}

// Summary stores the final rendering; it is printed when the TUI closes.
func (t *TUI) Summary(_ context.Context, total m.Stats, results []m.FileResult) {
	t.summary = fmt.Sprintf("\n%s\n\n%s",
		summaryStyle.Render(total.Summary()),
		renderStatsTable(t.basePath, total, results))
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// runModel is the Bubble Tea model behind the TUI.
type runModel struct {
	basePath m.Path
	spinner  spinner.Model
	progress progress.Model

	file     m.Path
	index    int
	total    int
	killed   int
	survived int
	untested int
	events   []string
	quitting bool
}

func newRunModel(basePath m.Path) runModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return runModel{
		basePath: basePath,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

// Update implements tea.Model.
func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			rm.quitting = true
			return rm, tea.Quit
		}

		return rm, nil

	case closeMsg:
		rm.quitting = true
		return rm, tea.Quit

	case fileStartedMsg:
		rm.file = msg.file
		rm.index = 0
		rm.total = msg.total

		return rm, rm.progress.SetPercent(0)

	case fileSkippedMsg:
		rm.pushEvent(skippedStyle.Render(fmt.Sprintf("Skipping %s: %s", msg.file, msg.reason)))

		return rm, nil

	case mutationTestedMsg:
		rm.index = msg.index
		rm.total = msg.total
		rm.applyRecord(msg.record)

		if msg.total > 0 {
			return rm, rm.progress.SetPercent(float64(msg.index) / float64(msg.total))
		}

		return rm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd

	case progress.FrameMsg:
		model, cmd := rm.progress.Update(msg)
		if pm, ok := model.(progress.Model); ok {
			rm.progress = pm
		}

		return rm, cmd
	}

	return rm, nil
}

func (rm *runModel) applyRecord(record m.MutationRecord) {
	switch record.Outcome {
	case m.OutcomeKilled:
		rm.killed++
	case m.OutcomeSurvived:
		rm.survived++
		rm.pushEvent(survivedStyle.Render(record.Message))
	case m.OutcomeUntestedNested:
		rm.untested++
		mu := record.Mutation
		rm.pushEvent(untestedStyle.Render(fmt.Sprintf("%s:%d:%d untested (nested)",
			mu.File.Shorten(rm.basePath), mu.Line, mu.Column+1)))
	case m.OutcomeIgnored, m.OutcomeDiscarded:
	}
}

func (rm *runModel) pushEvent(line string) {
	rm.events = append(rm.events, line)
	if len(rm.events) > maxEventLines {
		rm.events = rm.events[len(rm.events)-maxEventLines:]
	}
}

// View implements tea.Model.
func (rm runModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Mutor - mutation testing"))
	b.WriteString("\n\n")

	if rm.file != "" {
		fmt.Fprintf(&b, "%s %s %s\n", rm.spinner.View(),
			fileStyle.Render(string(rm.file)),
			counterStyle.Render(fmt.Sprintf("(%d/%d)", rm.index, rm.total)))
		b.WriteString(rm.progress.View())
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s waiting for mutations...\n", rm.spinner.View())
	}

	fmt.Fprintf(&b, "\n%s\n", counterStyle.Render(fmt.Sprintf(
		"killed %d | survived %d | untested %d", rm.killed, rm.survived, rm.untested)))

	if len(rm.events) > 0 {
		b.WriteString("\n")

		for _, event := range rm.events {
			b.WriteString(event)
			b.WriteString("\n")
		}
	}

	b.WriteString(counterStyle.Render("\npress q to quit\n"))

	return b.String()
}
