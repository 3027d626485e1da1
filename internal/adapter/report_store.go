package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "mutor.dev/pkg/mutor/internal/model"
)

// DefaultReportFileName is used when the configuration names a reports
// directory but no file name.
const DefaultReportFileName = "mutations.yaml"

// ReportStore persists and retrieves the ordered per-file mutation results
// produced by a run.
type ReportStore interface {
	SaveResults(ctx context.Context, dir m.Path, file string, results []m.FileResult) error
	LoadResults(ctx context.Context, dir m.Path, file string) ([]m.FileResult, error)
}

type reportStore struct{}

// NewReportStore constructs a YAML-backed ReportStore.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveResults(ctx context.Context, dir m.Path, file string, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if file == "" {
		file = DefaultReportFileName
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	path := filepath.Join(string(dir), file)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	return nil
}

func (rs *reportStore) LoadResults(ctx context.Context, dir m.Path, file string) ([]m.FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if file == "" {
		file = DefaultReportFileName
	}

	path := filepath.Join(string(dir), file)

	data, err := os.ReadFile(path) // #nosec G304 - path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	var results []m.FileResult
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	return results, nil
}
