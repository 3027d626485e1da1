package domain

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "mutor.dev/pkg/mutor/internal/model"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected string
	}{
		{
			name:     "short text untouched",
			text:     "a + b",
			max:      80,
			expected: "a + b",
		},
		{
			name:     "zero max disables truncation",
			text:     strings.Repeat("x", 200),
			max:      0,
			expected: strings.Repeat("x", 200),
		},
		{
			name:     "keeps first and last halves",
			text:     "abcdefghijklmnopqrstuvwxyzabcdefghijklmn", // 40 chars
			max:      10,
			expected: "abcde ... jklmn",
		},
		{
			name:     "whitespace collapsed before truncation",
			text:     "if  x \n\t{ return }",
			max:      80,
			expected: "if x { return }",
		},
		{
			name:     "multibyte runes never split at the cut",
			text:     strings.Repeat("é", 20),
			max:      10,
			expected: "ééééé ... ééééé",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateText(tt.text, tt.max)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestApplicator_KilledMutation(t *testing.T) {
	source := []byte("package p\n\nvar x = 1 + 2\n")
	file := m.Path("p/a.go")
	fs := newMemFS(map[m.Path][]byte{file: source})
	runner := &scriptedRunner{statuses: []m.TestStatus{m.Killed}}

	applicator := NewApplicator(fs, runner, DefaultMaxMessageLength, "")
	mu := m.Mutation{ID: "aaaa", Begin: 21, End: 22, Line: 3, Column: 10, Replacement: "-"}

	record, err := applicator.Test(context.Background(), file, source, mu, 1, 1, NewSurvivorSet(), false)
	require.NoError(t, err)

	assert.Equal(t, m.OutcomeKilled, record.Outcome)
	assert.Equal(t, "p/a.go:3:11 Replaced + with - -> killed", record.Message)
	assert.Empty(t, record.Diff)

	// The mutant was written to disk before the test run.
	require.Len(t, fs.writes, 1)
	assert.Contains(t, fs.writes[0].content, "var x = 1 - 2")
	assert.Equal(t, 1, runner.calls)
}

func TestApplicator_SurvivedMutationIsRecorded(t *testing.T) {
	source := []byte("package p\n\nvar x = 1 + 2\n")
	file := m.Path("p/a.go")
	fs := newMemFS(map[m.Path][]byte{file: source})
	runner := &scriptedRunner{statuses: []m.TestStatus{m.Survived}}
	survivors := NewSurvivorSet()

	applicator := NewApplicator(fs, runner, DefaultMaxMessageLength, "")
	mu := m.Mutation{ID: "aaaa", Begin: 21, End: 22, Line: 3, Column: 10, Replacement: "-"}

	record, err := applicator.Test(context.Background(), file, source, mu, 1, 1, survivors, true)
	require.NoError(t, err)

	assert.Equal(t, m.OutcomeSurvived, record.Outcome)
	assert.True(t, survivors.IsNested(m.Mutation{ParentID: "aaaa"}))
	assert.Contains(t, record.Diff, "-var x = 1 + 2")
	assert.Contains(t, record.Diff, "+var x = 1 - 2")
}

func TestApplicator_RemovalMessage(t *testing.T) {
	source := []byte("if x {\n\ty()\n}\n")
	file := m.Path("p/a.go")
	fs := newMemFS(map[m.Path][]byte{file: source})
	runner := &scriptedRunner{statuses: []m.TestStatus{m.Killed}}

	applicator := NewApplicator(fs, runner, DefaultMaxMessageLength, "")
	mu := m.Mutation{ID: "aaaa", Begin: 6, End: 12, Line: 1, Column: 5, Replacement: ""}

	record, err := applicator.Test(context.Background(), file, source, mu, 1, 1, NewSurvivorSet(), false)
	require.NoError(t, err)

	assert.Equal(t, "p/a.go:1:6 Removed y() -> killed", record.Message)
}

func TestApplicator_NestedSkip(t *testing.T) {
	source := []byte("package p\n\nvar x = 1 + 2\n")
	file := m.Path("p/a.go")
	fs := newMemFS(map[m.Path][]byte{file: source})
	runner := &scriptedRunner{}
	survivors := NewSurvivorSet()
	survivors.Record(m.Mutation{ID: "parent"})

	applicator := NewApplicator(fs, runner, DefaultMaxMessageLength, "")
	mu := m.Mutation{ID: "child", ParentID: "parent", Begin: 21, End: 22, Replacement: "-"}

	record, err := applicator.Test(context.Background(), file, source, mu, 1, 1, survivors, true)
	require.NoError(t, err)

	assert.Equal(t, m.OutcomeUntestedNested, record.Outcome)
	assert.Empty(t, fs.writes, "no disk write for a nested skip")
	assert.Zero(t, runner.calls, "no test run for a nested skip")
}

func TestApplicator_NestedSkipDisabled(t *testing.T) {
	source := []byte("package p\n\nvar x = 1 + 2\n")
	file := m.Path("p/a.go")
	fs := newMemFS(map[m.Path][]byte{file: source})
	runner := &scriptedRunner{statuses: []m.TestStatus{m.Killed}}
	survivors := NewSurvivorSet()
	survivors.Record(m.Mutation{ID: "parent"})

	applicator := NewApplicator(fs, runner, DefaultMaxMessageLength, "")
	mu := m.Mutation{ID: "child", ParentID: "parent", Begin: 21, End: 22, Replacement: "-"}

	record, err := applicator.Test(context.Background(), file, source, mu, 1, 1, survivors, false)
	require.NoError(t, err)

	assert.Equal(t, m.OutcomeKilled, record.Outcome)
	assert.Equal(t, 1, runner.calls)
}

func TestApplicator_FatalAbortsWithSentinel(t *testing.T) {
	source := []byte("package p\n\nvar x = 1 + 2\n")
	file := m.Path("p/a.go")
	fs := newMemFS(map[m.Path][]byte{file: source})
	runner := &scriptedRunner{statuses: []m.TestStatus{m.Fatal}}

	applicator := NewApplicator(fs, runner, DefaultMaxMessageLength, "")
	mu := m.Mutation{ID: "aaaa", Begin: 21, End: 22, Replacement: "-"}

	_, err := applicator.Test(context.Background(), file, source, mu, 1, 1, NewSurvivorSet(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFatalTestStatus)
	assert.Contains(t, err.Error(), "p/a.go")
}

func TestApplicator_BasePathShortensMessage(t *testing.T) {
	source := []byte("var x = 1 + 2\n")
	file := m.Path("/home/u/proj/p/a.go")
	fs := newMemFS(map[m.Path][]byte{file: source})
	runner := &scriptedRunner{statuses: []m.TestStatus{m.Killed}}

	applicator := NewApplicator(fs, runner, DefaultMaxMessageLength, "/home/u/proj")
	mu := m.Mutation{ID: "aaaa", Begin: 10, End: 11, Line: 1, Column: 10, Replacement: "-"}

	record, err := applicator.Test(context.Background(), file, source, mu, 1, 1, NewSurvivorSet(), false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(record.Message, "p/a.go:1:11 "), record.Message)
}
