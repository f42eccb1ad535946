package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/phenotidy/internal/model"
	"github.com/ppiankov/phenotidy/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outPath     string
	reportJSON  string
	timeout     time.Duration
	noCache     bool
	noSummary   bool
	strict      bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// tidyCmd represents the tidy command
var tidyCmd = &cobra.Command{
	Use:   "tidy <genemap-file>",
	Short: "Tidy a single genemap table into one row per gene-phenotype-inheritance triple",
	Long: `Tidy reads a tab-separated genemap table and:
- Splits each phenotype annotation field into individual entries
- Classifies entries against the long and short structural patterns
- Expands compound inheritance text into one row per label
- Joins the expanded rows back to their parent gene records
- Reports per-stage counts and an annotation completeness index

Entries matching neither pattern and records without annotations are
excluded, not treated as errors.

Example:
  phenotidy tidy genemap2.txt
  phenotidy tidy genemap2.txt --out genemap2.tidy.tsv --report run.json
  phenotidy tidy genemap2.txt --llm openai --llm-model gpt-4o-mini --report run.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTidy,
}

func init() {
	rootCmd.AddCommand(tidyCmd)

	// Output flags
	tidyCmd.Flags().StringVar(&outPath, "out", "", "tidy table output path (default: <input>.tidy.tsv)")
	tidyCmd.Flags().StringVar(&reportJSON, "report", "", "run report JSON path (optional)")

	// Run flags
	tidyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall run timeout (only the optional LLM summary can be slow)")
	tidyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable memoization of repeated entries")
	tidyCmd.Flags().BoolVar(&noSummary, "no-summary", false, "disable the stats summary after the run")
	tidyCmd.Flags().BoolVar(&strict, "strict", false, "fail the run if an invariant finding is reported")

	// LLM flags
	tidyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM run-summary generation")
	tidyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	tidyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runTidy(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := outPath
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".tidy.tsv"
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Tidying: %s\n", input)
		fmt.Fprintf(os.Stderr, "Output: %s\n", out)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.Summary = !noSummary

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		if err := loadLLMEnv(cfg); err != nil {
			return err
		}
	}

	// Create pipeline
	p := pipeline.NewPipeline(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Reading table...\n")
	}

	result, err := p.TidyFile(ctx, input)
	if err != nil {
		return fmt.Errorf("tidy failed: %w", err)
	}

	if verbose {
		stats := result.Report.Stats
		fmt.Fprintf(os.Stderr, "✓ Read %d records (%d annotated)\n", stats.Records, stats.RecordsAnnotated)
		fmt.Fprintf(os.Stderr, "✓ Classified %d of %d entries\n", stats.LongForm+stats.ShortForm, stats.Entries)
		fmt.Fprintf(os.Stderr, "✓ Expanded to %d tidy rows\n", stats.TidyRows)
		fmt.Fprintf(os.Stderr, "✓ Completeness index: %d/100\n", result.Report.Score.Index)
		if result.Report.LLM != nil && result.Report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", result.Report.LLM.Provider, result.Report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.Render(result, out, reportJSON, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if strict && len(result.Report.Findings) > 0 {
		return fmt.Errorf("strict mode: %d invariant finding(s) reported", len(result.Report.Findings))
	}

	return nil
}

// loadLLMEnv pulls provider credentials from the environment
func loadLLMEnv(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
