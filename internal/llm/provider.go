package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/phenotidy/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a natural-language summary of a run report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the phenotidy run report to summarize
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 800,
	}
}

// BuildPrompt constructs the default prompt for summarizing a run
// report. The summary describes the numbers in the report and nothing
// else: the LLM is told not to invent counts or speculate about the
// underlying genes.
func BuildPrompt(report model.Report) string {
	stats := report.Stats

	prompt := fmt.Sprintf(`You are summarizing a phenotidy run report. Phenotidy normalizes gene-phenotype annotation tables; it never interprets the biology.

CRITICAL RULES:
1. Use ONLY the numbers given below. DO NOT invent, extrapolate, or round counts.
2. DO NOT speculate about specific genes, diseases, or clinical meaning.
3. If a figure is missing from this report, state that it is unavailable.
4. Describe annotation COMPLETENESS, not correctness of the source data.

Run Summary:
- Source: %s
- Records read: %d (%d with phenotype annotations)
- Phenotype entries: %d (%d long form, %d short form, %d unmatched)
- Entries without inheritance: %d long form, %d short form
- Marked phenotypes: %d non-disease, %d susceptibility, %d provisional
- Tidy rows produced: %d
- Completeness index: %d/100 (%s confidence)

Key signals:
`, report.Source, stats.Records, stats.RecordsAnnotated,
		stats.Entries, stats.LongForm, stats.ShortForm, stats.Unmatched,
		stats.LongFormNoInherit, stats.ShortFormNoInherit,
		stats.NonDisease, stats.Susceptibility, stats.Provisional,
		stats.TidyRows, report.Score.Index, report.Score.Confidence)

	// Add top 3 signals
	for i, signal := range report.Score.Signals {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s: %s\n", signal.Type, signal.Description)
	}

	if len(report.Labels) > 0 {
		prompt += "\nMost frequent inheritance labels:\n"
		for i, label := range report.Labels {
			if i >= 5 {
				break
			}
			prompt += fmt.Sprintf("- %s: %d\n", label.Label, label.Count)
		}
	}

	prompt += "\nProvide a 3-4 sentence summary of annotation completeness for this run."

	return prompt
}
