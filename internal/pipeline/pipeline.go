package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/phenotidy/internal/cache"
	"github.com/ppiankov/phenotidy/internal/extract"
	"github.com/ppiankov/phenotidy/internal/llm"
	"github.com/ppiankov/phenotidy/internal/model"
	"github.com/ppiankov/phenotidy/internal/score"
	"github.com/ppiankov/phenotidy/internal/table"
	"github.com/ppiankov/phenotidy/internal/validate"
)

// RateLimiter bounds calls to external APIs. Only the optional LLM
// summary goes through it; the core pipeline never touches the network.
type RateLimiter interface {
	Wait(ctx context.Context, key string) error
}

// Pipeline orchestrates the complete tidy process
type Pipeline struct {
	reader     *table.Reader
	extractor  *extract.PhenotypeExtractor
	validator  *validate.Validator
	scorer     *score.Scorer
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	limiter    RateLimiter     // Optional, shared across batch jobs
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var extractor *extract.PhenotypeExtractor
	if cfg.Cache.Enabled {
		extractor = extract.NewCachedPhenotypeExtractor(cache.NewMemoryCache())
	} else {
		extractor = extract.NewPhenotypeExtractor()
	}

	// Create LLM summarizer if configured
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		reader:     table.NewReader(cfg.Input),
		extractor:  extractor,
		validator:  validate.NewValidator(),
		scorer:     score.NewScorer(),
		renderer:   NewRenderer(),
		summarizer: summarizer,
		config:     cfg,
	}
}

// UseLimiter installs a rate limiter for LLM calls. Batch processing
// shares one limiter across all jobs.
func (p *Pipeline) UseLimiter(l RateLimiter) {
	p.limiter = l
}

// Result contains the complete run result, including the intermediate
// stage outputs the invariant checks run over.
type Result struct {
	Records  []model.GeneRecord
	Parsed   []model.ParsedPhenotype
	Expanded []model.PhenotypeRow
	Rows     []model.TidyRow
	Report   *model.Report
}

// TidyFile reads one genemap file and runs the full pipeline over it.
func (p *Pipeline) TidyFile(ctx context.Context, path string) (*Result, error) {
	// 1. Read the source table
	records, skipped, err := p.reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	result := p.Tidy(records)
	result.Report.Source = path
	result.Report.Stats.LinesSkipped = skipped

	// Generate LLM summary if enabled (AFTER the rows are final, never
	// affects them)
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx, p.summarizer.ProviderName()); err != nil {
				return result, nil
			}
		}
		llmSummary, err := p.summarizer.GenerateSummary(ctx, *result.Report)
		if err != nil {
			// Don't fail the run, just warn
			fmt.Printf("Warning: LLM summary generation failed: %v\n", err)
		} else if llmSummary != nil {
			result.Report.LLM = llmSummary
		}
	}

	return result, nil
}

// Tidy runs the core pipeline over in-memory records: split each
// annotation field, classify the entries, expand inheritance, and join
// the expanded rows back to their parents. The stages are pure and
// single-threaded; running twice over the same records yields identical
// output.
func (p *Pipeline) Tidy(records []model.GeneRecord) *Result {
	stats := model.NewStats()
	stats.Records = len(records)

	// 2. Split annotation fields into entries, keyed by row handle
	// 3. Classify each entry against the long and short patterns
	parsed := p.classify(records, stats)

	// 4. Expand compound inheritance into one row per label
	expanded := p.expand(parsed, stats)

	// 5. Join expanded rows back to their parent records
	rows := Assemble(records, expanded)
	stats.TidyRows = len(rows)

	report := &model.Report{
		ProcessedAt: time.Now().UTC(),
		Stats:       *stats,
		Labels:      stats.Frequencies(),
		Score:       p.scorer.Calculate(stats),
		Findings:    p.validator.Check(parsed, expanded, rows),
	}

	return &Result{
		Records:  records,
		Parsed:   parsed,
		Expanded: expanded,
		Rows:     rows,
		Report:   report,
	}
}

// classify splits every record's annotation field and classifies the
// resulting entries. Unmatched entries are counted and dropped; only
// classified entries reach the returned slice.
func (p *Pipeline) classify(records []model.GeneRecord, stats *model.Stats) []model.ParsedPhenotype {
	var parsed []model.ParsedPhenotype

	for i, record := range records {
		entries := extract.SplitAnnotation(record.Phenotypes)
		if entries == nil {
			// No phenotype, no output: the record is dropped here.
			continue
		}
		stats.RecordsAnnotated++
		stats.Entries += len(entries)

		for _, entry := range entries {
			ph := p.extractor.Classify(entry)
			ph.Row = i

			switch ph.Form {
			case model.FormLong:
				stats.LongForm++
				if ph.Inheritance == nil {
					stats.LongFormNoInherit++
				}
			case model.FormShort:
				stats.ShortForm++
				if ph.Inheritance == nil {
					stats.ShortFormNoInherit++
				}
			default:
				stats.Unmatched++
				continue
			}

			switch {
			case ph.IsNonDisease():
				stats.NonDisease++
			case ph.IsSusceptibility():
				stats.Susceptibility++
			case ph.IsProvisional():
				stats.Provisional++
			}

			parsed = append(parsed, ph)
		}
	}

	return parsed
}

// expand turns each classified phenotype into one row per inheritance
// label, or a single row with an absent label.
func (p *Pipeline) expand(parsed []model.ParsedPhenotype, stats *model.Stats) []model.PhenotypeRow {
	var expanded []model.PhenotypeRow

	for _, ph := range parsed {
		if !ph.Matched() {
			continue
		}

		rows := extract.ExpandInheritance(ph)
		if ph.Form == model.FormLong {
			stats.LongFormExpanded += len(rows)
		}

		for _, row := range rows {
			if row.Inheritance != nil {
				stats.CountLabel(*row.Inheritance)
			}
		}

		expanded = append(expanded, rows...)
	}

	return expanded
}
