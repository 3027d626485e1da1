package adapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"

	m "mutor.dev/pkg/mutor/internal/model"
)

// TestRunnerAdapter abstracts the execution of the project's test suite.
// Run blocks until the suite finishes and resolves to exactly one status.
// Fatal means the runner itself could not produce a pass/fail verdict and
// invalidates the remainder of the campaign.
type TestRunnerAdapter interface {
	Run(ctx context.Context) (m.TestStatus, error)
}

// CommandTestRunner runs a shell command and maps its exit status:
// a failing command (tests failed) kills the mutation, a passing command
// means the mutation survived. A command that cannot be started at all is
// reported as Fatal.
type CommandTestRunner struct {
	command string
	dir     string
}

// NewCommandTestRunner constructs a CommandTestRunner that executes command
// through the shell in dir (empty dir means the current directory).
func NewCommandTestRunner(command, dir string) *CommandTestRunner {
	return &CommandTestRunner{command: command, dir: dir}
}

// Run executes the configured command and classifies its exit status.
func (r *CommandTestRunner) Run(ctx context.Context) (m.TestStatus, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", r.command)
	cmd.Dir = r.dir

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	slog.Debug("Test command finished", "command", r.command, "error", err)

	if err == nil {
		return m.Survived, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return m.Killed, nil
	}

	// The command never ran (missing shell, bad working directory, ...).
	return m.Fatal, err
}

// CallbackTestRunner wraps a user-supplied function behind the runner
// interface. Unlike the command form it may resolve to Fatal directly.
type CallbackTestRunner struct {
	fn func(ctx context.Context) (m.TestStatus, error)
}

// NewCallbackTestRunner constructs a CallbackTestRunner around fn.
func NewCallbackTestRunner(fn func(ctx context.Context) (m.TestStatus, error)) *CallbackTestRunner {
	return &CallbackTestRunner{fn: fn}
}

// Run invokes the wrapped callback.
func (r *CallbackTestRunner) Run(ctx context.Context) (m.TestStatus, error) {
	if r.fn == nil {
		return m.Fatal, errors.New("no test callback configured")
	}

	return r.fn(ctx)
}
