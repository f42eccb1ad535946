package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ppiankov/phenotidy/internal/model"
	"github.com/ppiankov/phenotidy/internal/pipeline"
	"github.com/ppiankov/phenotidy/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// llm flags are defined in tidy.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Tidy multiple genemap files from a list in parallel",
	Long: `Batch processes multiple genemap files concurrently:
- Read input paths from a list file (one per line, # comments skipped)
- Tidy files in parallel with a configurable worker count
- Each file's pipeline stays single-threaded, so per-file output is
  deterministic regardless of worker count
- Write one tidy table and one run report per input into the output dir

Example:
  phenotidy batch inputs.txt
  phenotidy batch inputs.txt --concurrency 8 --output-dir ./tidy
  phenotidy batch inputs.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./phenotidy-out", "output directory for tidy tables and reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from tidy command
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable memoization of repeated entries")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM run-summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Phenotidy Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input list:   %s\n", listFile)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.Summary = false // per-file summaries would interleave
	cfg.Concurrency.Workers = concurrency

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		if err := loadLLMEnv(cfg); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One pipeline shared across workers: the stages are pure and the
	// extractor cache is safe for concurrent reads of identical entries
	p := pipeline.NewPipeline(cfg)

	// Bound LLM API calls across workers
	if llmEnabled {
		p.UseLimiter(worker.NewLimiter(cfg.LLM.RateLimit, 1))
	}

	processor := worker.NewBatchProcessor(p, outputDir, concurrency, verbose)

	results, err := processor.ProcessFile(ctx, listFile)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	// Report per-file outcomes
	succeeded := 0
	failed := 0
	totalRows := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", r.Path, r.Error)
			continue
		}
		succeeded++
		totalRows += r.Rows
		fmt.Fprintf(os.Stderr, "  ✓ %s → %s (%d rows)\n", r.Path, r.Output, r.Rows)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Done: %d succeeded, %d failed, %d tidy rows total\n", succeeded, failed, totalRows)
	fmt.Fprintf(os.Stderr, "\n")

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}

	return nil
}
