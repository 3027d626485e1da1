package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutor.dev/pkg/mutor/internal/controller"
	m "mutor.dev/pkg/mutor/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated mutation reports",
		Long:  "View previously generated mutation reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE:  viewReports,
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

// viewReports re-renders a persisted run: surviving mutations with their
// diffs, then the summary table.
func viewReports(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := reportStore.LoadResults(
		ctx,
		m.Path(viper.GetString(outputFlagName)),
		viper.GetString(reportsFileKey),
	)
	if err != nil {
		return err
	}

	basePath := m.Path(viper.GetString(basePathConfigKey))
	ui := controller.NewSimpleUI(cmd, basePath)

	var total m.Stats

	for _, result := range results {
		total.Add(result.Stats)

		for i, record := range result.Records {
			ui.MutationTested(ctx, i+1, len(result.Records), record)
		}
	}

	ui.Summary(ctx, total, results)

	return nil
}
