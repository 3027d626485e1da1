package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"mutor.dev/pkg/mutor/internal/domain"
	m "mutor.dev/pkg/mutor/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and mutation counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMutations(cmd, parsePaths(args))
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type fileEstimate struct {
	file      m.Path
	all       int
	discarded int
	ignored   int
	testable  int
}

// listMutations estimates the run without touching any file: it generates
// and classifies mutations for every discovered source and renders the
// counts as a table. No test command is executed.
func listMutations(cmd *cobra.Command, paths []m.Path) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := fsAdapter.FindSourceFiles(ctx, paths)
	if err != nil {
		return err
	}

	filter, err := domain.NewFilter(
		viper.GetStringSlice(discardConfigKey),
		viper.GetStringSlice(ignoreConfigKey),
	)
	if err != nil {
		return err
	}

	basePath := m.Path(viper.GetString(basePathConfigKey))
	exclude := viper.GetStringSlice(excludeConfigKey)

	// Estimation never touches the files, so unlike the run itself it can
	// fan out across sources.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	estimates := make([]fileEstimate, len(files))

	for i, file := range files {
		group.Go(func() error {
			estimate, err := estimateFile(groupCtx, file, exclude, filter)
			if err != nil {
				return err
			}

			estimate.file = file.Shorten(basePath)
			estimates[i] = estimate

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	renderEstimates(cmd, estimates)

	return nil
}

func estimateFile(ctx context.Context, file m.Path, exclude []string, filter *domain.Filter) (fileEstimate, error) {
	source, err := fsAdapter.ReadFile(ctx, file)
	if err != nil {
		return fileEstimate{}, fmt.Errorf("reading %s: %w", file, err)
	}

	mutations, err := generator.Generate(ctx, file, source, exclude)
	if err != nil {
		return fileEstimate{}, fmt.Errorf("generating mutations for %s: %w", file, err)
	}

	estimate := fileEstimate{all: len(mutations)}

	for _, mutation := range mutations {
		switch filter.Classify(mutation, source) {
		case domain.FilterDiscard:
			estimate.discarded++
		case domain.FilterIgnore:
			estimate.ignored++
		case domain.FilterProceed:
			estimate.testable++
		}
	}

	return estimate, nil
}

func renderEstimates(cmd *cobra.Command, estimates []fileEstimate) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"File", "All", "Discarded", "Ignored", "Testable"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	var totalAll, totalTestable int

	for _, estimate := range estimates {
		totalAll += estimate.all
		totalTestable += estimate.testable
		table.Append([]string{
			string(estimate.file),
			fmt.Sprintf("%d", estimate.all),
			fmt.Sprintf("%d", estimate.discarded),
			fmt.Sprintf("%d", estimate.ignored),
			fmt.Sprintf("%d", estimate.testable),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(estimates)),
		fmt.Sprintf("%d", totalAll),
		"",
		"",
		fmt.Sprintf("%d", totalTestable),
	})

	table.Render()
}
