package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "mutor.dev/pkg/mutor/internal/model"
)

func TestViewReports_RendersPersistedRun(t *testing.T) {
	dir := t.TempDir()

	results := []m.FileResult{
		{
			File:  "pkg/calc.go",
			Stats: m.Stats{All: 4, Survived: 1},
			Records: []m.MutationRecord{
				{Outcome: m.OutcomeKilled},
				{
					Outcome: m.OutcomeSurvived,
					Message: "pkg/calc.go:4:11 Replaced + with - -> survived",
				},
			},
		},
	}
	require.NoError(t, reportStore.SaveResults(context.Background(), m.Path(dir), "", results))

	setViper(t, outputFlagName, dir)

	cmd := &cobra.Command{}
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	require.NoError(t, viewReports(cmd, nil))

	assert.Contains(t, output.String(), "Replaced + with - -> survived")
	assert.Contains(t, output.String(), "3 of 4 unignored mutations are tested (75%). 0 mutations were ignored.")
	assert.Contains(t, output.String(), "pkg/calc.go")
}

func TestViewReports_MissingReport(t *testing.T) {
	setViper(t, outputFlagName, t.TempDir())

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, viewReports(cmd, nil))
}
