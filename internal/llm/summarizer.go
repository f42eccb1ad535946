package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/phenotidy/internal/model"
)

// Summarizer wraps an LLM provider and produces run commentary. The
// summary is observational: it is generated after the tidy rows are
// final and never feeds back into them.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider. An
// empty provider name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or "" if disabled
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces an LLM summary of the run report. A disabled
// summarizer returns (nil, nil). An unavailable provider is reported in
// the summary's warnings rather than failing the run.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  true,
			Provider: s.provider.Name(),
			Model:    s.config.Model,
			Warnings: []string{fmt.Sprintf("provider %s is not available", s.provider.Name())},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}

// RenderSeparateMarkdown renders the LLM summary as a standalone
// Markdown document, clearly labeled as generated commentary.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Phenotidy Run Summary (LLM-generated)\n\n")
	b.WriteString(fmt.Sprintf("> Generated by %s/%s. This commentary describes run statistics and never alters the tidy output.\n\n", summary.Provider, summary.Model))

	if summary.SummaryMD != "" {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	} else {
		b.WriteString("_No summary was generated._\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return b.String()
}
