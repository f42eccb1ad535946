package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/phenotidy/internal/model"
	"github.com/ppiankov/phenotidy/internal/pipeline"
)

// mockTidier implements Tidier without touching the filesystem
type mockTidier struct {
	mu       sync.Mutex
	tidied   []string
	rendered []string
	failOn   string
}

func (m *mockTidier) TidyFile(ctx context.Context, path string) (*pipeline.Result, error) {
	m.mu.Lock()
	m.tidied = append(m.tidied, path)
	m.mu.Unlock()

	if path == m.failOn {
		return nil, errors.New("unreadable input")
	}

	return &pipeline.Result{
		Rows:   make([]model.TidyRow, 3),
		Report: &model.Report{Source: path},
	}, nil
}

func (m *mockTidier) Render(result *pipeline.Result, outPath, jsonPath string, verbose bool) error {
	m.mu.Lock()
	m.rendered = append(m.rendered, outPath)
	m.mu.Unlock()
	return nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	tidier := &mockTidier{}
	processor := NewBatchProcessor(tidier, "/tmp/out", 2, false)

	paths := []string{"a.txt", "b.txt", "c.txt"}
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("%s: unexpected error %v", r.Path, r.GetError())
		}
		if r.Rows != 3 {
			t.Errorf("%s: expected 3 rows, got %d", r.Path, r.Rows)
		}
	}
	if len(tidier.tidied) != 3 {
		t.Errorf("expected 3 tidy calls, got %d", len(tidier.tidied))
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	tidier := &mockTidier{failOn: "b.txt"}
	processor := NewBatchProcessor(tidier, "/tmp/out", 2, false)

	results := processor.ProcessPaths(context.Background(), []string{"a.txt", "b.txt"})

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			if r.Path != "b.txt" {
				t.Errorf("expected b.txt to fail, got %s", r.Path)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
}

func TestBatchProcessor_EmptyPaths(t *testing.T) {
	processor := NewBatchProcessor(&mockTidier{}, "/tmp/out", 2, false)

	results := processor.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestTidyJob_OutputPaths(t *testing.T) {
	tidier := &mockTidier{}
	job := &TidyJob{
		Path:      "/data/genemap2.txt",
		OutputDir: "/out",
		Tidier:    tidier,
	}

	result := job.Execute(context.Background())

	tidyResult, ok := result.(*TidyResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result)
	}
	if tidyResult.Output != filepath.Join("/out", "genemap2.tidy.tsv") {
		t.Errorf("unexpected output path %q", tidyResult.Output)
	}
	if len(tidier.rendered) != 1 || !strings.HasSuffix(tidier.rendered[0], "genemap2.tidy.tsv") {
		t.Errorf("unexpected render target %v", tidier.rendered)
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "inputs.txt")

	content := strings.Join([]string{
		"# nightly genemap snapshots",
		"a.txt",
		"",
		"b.txt",
		"a.txt",
	}, "\n")
	if err := os.WriteFile(listPath, []byte(content), 0644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(paths) != 2 || paths[0] != "a.txt" || paths[1] != "b.txt" {
		t.Errorf("expected deduplicated [a.txt b.txt], got %v", paths)
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile("/nonexistent/inputs.txt"); err == nil {
		t.Error("expected error for missing list file")
	}
}
