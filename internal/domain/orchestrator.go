package domain

import (
	"context"
	"fmt"
	"log/slog"

	"mutor.dev/pkg/mutor/internal/adapter"
	"mutor.dev/pkg/mutor/internal/controller"
	m "mutor.dev/pkg/mutor/internal/model"
)

// Hooks are the run-level and file-level extension points. All hooks are
// awaited before the pipeline proceeds and run exactly once per their
// scope. The BeforeEach result is accepted for forward compatibility but
// does not currently gate execution.
type Hooks struct {
	Before     func(ctx context.Context) error
	BeforeEach func(ctx context.Context, file m.Path) (bool, error)
	AfterEach  func(ctx context.Context, file m.Path) error
	After      func(ctx context.Context) error
}

// RunConfig carries the per-run settings consumed by the orchestrator.
type RunConfig struct {
	// Files lists the source files to mutate, in order.
	Files []m.Path
	// Exclude names mutation categories passed through to the generator.
	Exclude []string
	// SkipNestedSurvivors enables the nested-mutation optimization: a
	// mutation inside an already surviving one is recorded untested
	// instead of spending a test run on it.
	SkipNestedSurvivors bool
	// BasePath only shortens displayed file paths.
	BasePath m.Path
	// ReportsDir, when set, is where the result store persists the run.
	ReportsDir  m.Path
	ReportsFile string
}

// Orchestrator sequences a whole mutation testing campaign: per file a
// baseline run, the per-mutation pipeline, and the lifecycle hooks; at the
// end the aggregate summary and the report hand-off.
type Orchestrator interface {
	Run(ctx context.Context) ([]m.FileResult, error)
}

type orchestrator struct {
	fs         adapter.SourceFSAdapter
	runner     adapter.TestRunnerAdapter
	store      adapter.ReportStore
	generator  Generator
	filter     *Filter
	applicator *Applicator
	ui         controller.UI
	hooks      Hooks
	cfg        RunConfig
}

// NewOrchestrator wires the pipeline components together. store may be nil
// when no report destination is configured.
func NewOrchestrator(
	fs adapter.SourceFSAdapter,
	runner adapter.TestRunnerAdapter,
	store adapter.ReportStore,
	generator Generator,
	filter *Filter,
	applicator *Applicator,
	ui controller.UI,
	hooks Hooks,
	cfg RunConfig,
) Orchestrator {
	return &orchestrator{
		fs:         fs,
		runner:     runner,
		store:      store,
		generator:  generator,
		filter:     filter,
		applicator: applicator,
		ui:         ui,
		hooks:      hooks,
		cfg:        cfg,
	}
}

// Run executes the campaign sequentially: files are fully ordered, and
// within a file no two mutations are ever in flight at once. Parallel
// mutation application would corrupt results, since at most one mutated
// version of a file may exist on disk at any instant.
func (o *orchestrator) Run(ctx context.Context) ([]m.FileResult, error) {
	survivors := NewSurvivorSet()

	var (
		results []m.FileResult
		total   m.Stats
	)

	if o.hooks.Before != nil {
		if err := o.hooks.Before(ctx); err != nil {
			return nil, fmt.Errorf("before hook: %w", err)
		}
	}

	for _, file := range o.cfg.Files {
		if o.hooks.BeforeEach != nil {
			// The result is reserved for skip control; see Hooks.
			if _, err := o.hooks.BeforeEach(ctx, file); err != nil {
				return results, fmt.Errorf("beforeEach hook: %w", err)
			}
		}

		result, processed, err := o.runFile(ctx, file, survivors)
		if err != nil {
			return results, err
		}

		if processed {
			results = append(results, result)
			total.Add(result.Stats)
		}

		if o.hooks.AfterEach != nil {
			if err := o.hooks.AfterEach(ctx, file); err != nil {
				return results, fmt.Errorf("afterEach hook: %w", err)
			}
		}
	}

	if total.All > 0 {
		slog.Info(total.Summary())
		o.ui.Summary(ctx, total, results)
	}

	if o.store != nil && o.cfg.ReportsDir != "" {
		if err := o.store.SaveResults(ctx, o.cfg.ReportsDir, o.cfg.ReportsFile, results); err != nil {
			return results, err
		}
	}

	if o.hooks.After != nil {
		if err := o.hooks.After(ctx); err != nil {
			return results, fmt.Errorf("after hook: %w", err)
		}
	}

	return results, nil
}

// runFile drives one file through baseline run and mutation testing. The
// original source is snapshotted up front and written back by a deferred
// finalizer, so the file leaves the pipeline byte-identical on every exit
// path, including a propagating error.
func (o *orchestrator) runFile(ctx context.Context, file m.Path, survivors *SurvivorSet) (result m.FileResult, processed bool, err error) {
	displayPath := file.Shorten(o.cfg.BasePath)

	if !o.fs.FileExists(ctx, file) {
		slog.Warn("Source file not found, skipping", "file", displayPath)
		o.ui.FileSkipped(ctx, displayPath, "file not found")

		return m.FileResult{}, false, nil
	}

	source, err := o.fs.ReadFile(ctx, file)
	if err != nil {
		return m.FileResult{}, false, fmt.Errorf("failed to read %s: %w", file, err)
	}

	defer func() {
		// Restoration must run even when ctx was cancelled mid-pipeline.
		restoreCtx := context.WithoutCancel(ctx)
		if restoreErr := o.fs.WriteFile(restoreCtx, file, source, 0o600); restoreErr != nil && err == nil {
			err = fmt.Errorf("failed to restore %s: %w", file, restoreErr)
		}
	}()

	baseline, runErr := o.runner.Run(ctx)
	switch baseline {
	case m.Fatal:
		return m.FileResult{}, false, fmt.Errorf("%w during baseline of %s: %v", ErrFatalTestStatus, displayPath, runErr)
	case m.Killed:
		// Mutation testing is only meaningful when the tests pass unmutated.
		slog.Warn("Tests fail without mutations", "file", displayPath)
		o.ui.FileSkipped(ctx, displayPath, "tests fail without mutations")

		return m.FileResult{}, false, nil
	case m.Survived:
	}

	mutations, err := o.generator.Generate(ctx, file, source, o.cfg.Exclude)
	if err != nil {
		return m.FileResult{}, false, err
	}

	o.ui.FileStarted(ctx, displayPath, len(mutations))

	result = m.FileResult{File: file, OriginalSource: string(source)}

	for i, mu := range mutations {
		result.Stats.All++

		var record m.MutationRecord

		switch o.filter.Classify(mu, source) {
		case FilterDiscard:
			record = m.MutationRecord{Mutation: mu, Outcome: m.OutcomeDiscarded}
		case FilterIgnore:
			result.Stats.Ignored++
			record = m.MutationRecord{Mutation: mu, Outcome: m.OutcomeIgnored}
		case FilterProceed:
			record, err = o.applicator.Test(ctx, file, source, mu, i+1, len(mutations), survivors, o.cfg.SkipNestedSurvivors)
			if err != nil {
				return result, false, err
			}

			switch record.Outcome {
			case m.OutcomeUntestedNested:
				result.Stats.Untested++
			case m.OutcomeSurvived:
				result.Stats.Survived++
			case m.OutcomeKilled, m.OutcomeIgnored, m.OutcomeDiscarded:
			}
		}

		result.Records = append(result.Records, record)
		o.ui.MutationTested(ctx, i+1, len(mutations), record)
	}

	return result, true, nil
}
