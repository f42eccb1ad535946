package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/phenotidy/internal/pipeline"
)

// Tidier defines the interface for tidying a single genemap file
type Tidier interface {
	TidyFile(ctx context.Context, path string) (*pipeline.Result, error)
	Render(result *pipeline.Result, outPath, jsonPath string, verbose bool) error
}

// TidyJob represents one genemap file to tidy
type TidyJob struct {
	Path      string
	OutputDir string
	Tidier    Tidier
	Verbose   bool
}

// Execute executes the tidy job
func (j *TidyJob) Execute(ctx context.Context) Result {
	result, err := j.Tidier.TidyFile(ctx, j.Path)
	if err != nil {
		return &TidyResult{Path: j.Path, Error: err}
	}

	base := strings.TrimSuffix(filepath.Base(j.Path), filepath.Ext(j.Path))
	outPath := filepath.Join(j.OutputDir, base+".tidy.tsv")
	jsonPath := filepath.Join(j.OutputDir, base+".report.json")

	if err := j.Tidier.Render(result, outPath, jsonPath, j.Verbose); err != nil {
		return &TidyResult{Path: j.Path, Error: err}
	}

	return &TidyResult{
		Path:   j.Path,
		Output: outPath,
		Rows:   len(result.Rows),
	}
}

// TidyResult represents the result of a tidy job
type TidyResult struct {
	Path   string
	Output string
	Rows   int
	Error  error
}

// GetError returns the error from the tidy result
func (r *TidyResult) GetError() error {
	return r.Error
}

// BatchProcessor tidies multiple genemap files concurrently. Each file's
// pipeline stays single-threaded, so per-file output is deterministic
// regardless of worker count.
type BatchProcessor struct {
	tidier      Tidier
	outputDir   string
	concurrency int
	verbose     bool
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(tidier Tidier, outputDir string, concurrency int, verbose bool) *BatchProcessor {
	return &BatchProcessor{
		tidier:      tidier,
		outputDir:   outputDir,
		concurrency: concurrency,
		verbose:     verbose,
	}
}

// ProcessPaths tidies multiple genemap files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*TidyResult {
	if len(paths) == 0 {
		return []*TidyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&TidyJob{
			Path:      path,
			OutputDir: b.outputDir,
			Tidier:    b.tidier,
			Verbose:   b.verbose,
		})
	}

	results := pool.Wait()

	tidyResults := make([]*TidyResult, len(results))
	for i, result := range results {
		tidyResults[i] = result.(*TidyResult)
	}

	return tidyResults
}

// ProcessFile reads input paths from a list file and tidies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*TidyResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read input list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads input paths from a file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
