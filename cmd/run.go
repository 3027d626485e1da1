package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutor.dev/pkg/mutor/internal/adapter"
	"mutor.dev/pkg/mutor/internal/controller"
	"mutor.dev/pkg/mutor/internal/domain"
	m "mutor.dev/pkg/mutor/internal/model"
)

var testCommandFlag string
var skipNestedFlag bool
var maxLengthFlag int
var ignorePatterns []string
var discardPatterns []string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run mutation testing",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutations(cmd, parsePaths(args))
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&testCommandFlag, testCommandFlagName, "c", viper.GetString(testCommandConfigKey), "shell command that runs the test suite")
	bindFlagToConfig(cmd.Flags().Lookup(testCommandFlagName), testCommandConfigKey)

	cmd.Flags().BoolVar(&skipNestedFlag, skipNestedFlagName, viper.GetBool(skipNestedConfigKey), "skip mutations nested inside an already surviving mutation")
	bindFlagToConfig(cmd.Flags().Lookup(skipNestedFlagName), skipNestedConfigKey)

	cmd.Flags().IntVar(&maxLengthFlag, maxLengthFlagName, viper.GetInt(maxLengthConfigKey), "maximum length of reported mutation text (0 = unlimited)")
	bindFlagToConfig(cmd.Flags().Lookup(maxLengthFlagName), maxLengthConfigKey)

	cmd.Flags().StringArrayVar(&ignorePatterns, ignoreFlagName, viper.GetStringSlice(ignoreConfigKey), "ignore mutations whose source text matches regex (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(ignoreFlagName), ignoreConfigKey)

	cmd.Flags().StringArrayVar(&discardPatterns, discardFlagName, viper.GetStringSlice(discardConfigKey), "discard mutations whose replacement matches regex (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(discardFlagName), discardConfigKey)
}

func runMutations(cmd *cobra.Command, paths []m.Path) error {
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
	runner := adapter.NewCommandTestRunner(viper.GetString(testCommandConfigKey), "")
	applicator := domain.NewApplicator(fsAdapter, runner, viper.GetInt(maxLengthConfigKey), basePath)

	ui := controller.NewUI(cmd, basePath, controller.IsTTY(os.Stdout))
	if err := ui.Start(ctx); err != nil {
		return err
	}
	defer ui.Close(ctx)

	orchestrator := domain.NewOrchestrator(
		fsAdapter,
		runner,
		reportStore,
		generator,
		filter,
		applicator,
		ui,
		domain.Hooks{},
		domain.RunConfig{
			Files:               files,
			Exclude:             viper.GetStringSlice(excludeConfigKey),
			SkipNestedSurvivors: viper.GetBool(skipNestedConfigKey),
			BasePath:            basePath,
			ReportsDir:          m.Path(viper.GetString(outputFlagName)),
			ReportsFile:         viper.GetString(reportsFileKey),
		},
	)

	_, err = orchestrator.Run(ctx)

	return err
}
