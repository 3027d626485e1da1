package domain

import (
	"context"
	"fmt"
	"os"

	m "mutor.dev/pkg/mutor/internal/model"
)

// memFS is an in-memory SourceFSAdapter that records every write so tests
// can assert on the exact on-disk history of a file pipeline.
type memFS struct {
	files  map[m.Path][]byte
	writes []memWrite
}

type memWrite struct {
	path    m.Path
	content string
}

func newMemFS(files map[m.Path][]byte) *memFS {
	if files == nil {
		files = make(map[m.Path][]byte)
	}

	return &memFS{files: files}
}

func (f *memFS) ReadFile(_ context.Context, path m.Path) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}

	return append([]byte(nil), content...), nil
}

func (f *memFS) WriteFile(_ context.Context, path m.Path, content []byte, _ os.FileMode) error {
	f.files[path] = append([]byte(nil), content...)
	f.writes = append(f.writes, memWrite{path: path, content: string(content)})

	return nil
}

func (f *memFS) FileExists(_ context.Context, path m.Path) bool {
	_, ok := f.files[path]

	return ok
}

func (f *memFS) FindSourceFiles(_ context.Context, paths []m.Path) ([]m.Path, error) {
	return paths, nil
}

// scriptedRunner returns a fixed sequence of statuses, one per Run call.
type scriptedRunner struct {
	statuses []m.TestStatus
	calls    int
}

func (r *scriptedRunner) Run(_ context.Context) (m.TestStatus, error) {
	if r.calls >= len(r.statuses) {
		return m.Survived, nil
	}

	status := r.statuses[r.calls]
	r.calls++

	if status == m.Fatal {
		return status, fmt.Errorf("runner crashed")
	}

	return status, nil
}

// staticGenerator hands out pre-built mutations per file.
type staticGenerator struct {
	mutations map[m.Path][]m.Mutation
	calls     []m.Path
}

func (g *staticGenerator) Generate(_ context.Context, file m.Path, _ []byte, _ []string) ([]m.Mutation, error) {
	g.calls = append(g.calls, file)

	return g.mutations[file], nil
}

// recordingUI captures every pipeline event.
type recordingUI struct {
	started   []m.Path
	skipped   map[m.Path]string
	tested    []m.MutationRecord
	summaries []m.Stats
}

func newRecordingUI() *recordingUI {
	return &recordingUI{skipped: make(map[m.Path]string)}
}

func (u *recordingUI) Start(_ context.Context) error { return nil }
func (u *recordingUI) Close(_ context.Context)       {}

func (u *recordingUI) FileStarted(_ context.Context, file m.Path, _ int) {
	u.started = append(u.started, file)
}

func (u *recordingUI) FileSkipped(_ context.Context, file m.Path, reason string) {
	u.skipped[file] = reason
}

func (u *recordingUI) MutationTested(_ context.Context, _, _ int, record m.MutationRecord) {
	u.tested = append(u.tested, record)
}

func (u *recordingUI) Summary(_ context.Context, total m.Stats, _ []m.FileResult) {
	u.summaries = append(u.summaries, total)
}

// recordingStore captures the results handed to the report collaborator.
type recordingStore struct {
	saved [][]m.FileResult
}

func (s *recordingStore) SaveResults(_ context.Context, _ m.Path, _ string, results []m.FileResult) error {
	s.saved = append(s.saved, results)

	return nil
}

func (s *recordingStore) LoadResults(_ context.Context, _ m.Path, _ string) ([]m.FileResult, error) {
	return nil, nil
}

func mustFilter(discard, ignore []string) *Filter {
	filter, err := NewFilter(discard, ignore)
	if err != nil {
		panic(err)
	}

	return filter
}
