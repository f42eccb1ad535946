package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/phenotidy/internal/llm"
	"github.com/ppiankov/phenotidy/internal/model"
	"github.com/ppiankov/phenotidy/internal/table"
)

// Renderer writes run outputs: the tidy table, the JSON run report, and
// the stats summary printed after a run.
type Renderer struct {
	writer *table.Writer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{writer: table.NewWriter()}
}

// RenderTable writes the tidy table to the given path
func (r *Renderer) RenderTable(rows []model.TidyRow, path string) error {
	return r.writer.WriteFile(rows, path)
}

// RenderJSON writes the run report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderLLMMarkdown writes the optional LLM summary to a separate file
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write LLM summary: %w", err)
	}
	return nil
}

// RenderSummary prints the run statistics to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	stats := report.Stats

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Phenotidy Run Summary")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Source:                    %s\n", report.Source)
	fmt.Printf("  Records read:              %d\n", stats.Records)
	if stats.LinesSkipped > 0 {
		fmt.Printf("  Malformed lines skipped:   %d\n", stats.LinesSkipped)
	}
	fmt.Printf("  Records with phenotypes:   %d\n", stats.RecordsAnnotated)
	fmt.Printf("  Phenotype entries:         %d\n", stats.Entries)
	fmt.Printf("    Long form:               %d (%d without inheritance)\n", stats.LongForm, stats.LongFormNoInherit)
	fmt.Printf("    Long form expanded:      %d\n", stats.LongFormExpanded)
	fmt.Printf("    Short form:              %d (%d without inheritance)\n", stats.ShortForm, stats.ShortFormNoInherit)
	fmt.Printf("    Unmatched:               %d\n", stats.Unmatched)
	fmt.Printf("  Non-disease [ ]:           %d\n", stats.NonDisease)
	fmt.Printf("  Susceptibility { }:        %d\n", stats.Susceptibility)
	fmt.Printf("  Provisional ?:             %d\n", stats.Provisional)
	fmt.Printf("  Tidy rows written:         %d\n", stats.TidyRows)
	fmt.Println()
	fmt.Printf("  Completeness index:        %d/100 (%s confidence)\n", report.Score.Index, report.Score.Confidence)

	if len(report.Labels) > 0 {
		fmt.Println()
		fmt.Println("  Inheritance labels:")
		for i, label := range report.Labels {
			if i >= 15 {
				fmt.Printf("    ... and %d more\n", len(report.Labels)-15)
				break
			}
			fmt.Printf("    %6d  %s\n", label.Count, label.Label)
		}
	}

	if len(report.Findings) > 0 {
		fmt.Println()
		fmt.Printf("  ⚠ Invariant findings: %d\n", len(report.Findings))
		for _, f := range report.Findings {
			fmt.Printf("    [%s] %s\n", f.Invariant, f.Detail)
		}
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// Render renders the run result to the configured outputs.
func (p *Pipeline) Render(result *Result, outPath, jsonPath string, verbose bool) error {
	report := result.Report

	if outPath != "" {
		if err := p.renderer.RenderTable(result.Rows, outPath); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
		report.Output = outPath
		if verbose {
			fmt.Printf("✓ Wrote tidy table: %s\n", outPath)
		}
	}

	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote report: %s\n", jsonPath)
		}
	}

	// Render LLM summary to a separate file if present
	if report.LLM != nil && report.LLM.Enabled && jsonPath != "" {
		llmPath := strings.TrimSuffix(jsonPath, ".json") + ".llm.md"
		markdown := llm.RenderSeparateMarkdown(report.LLM)
		if err := p.renderer.RenderLLMMarkdown(markdown, llmPath); err != nil {
			fmt.Printf("Warning: Failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	if p.config.Output.Summary {
		p.renderer.RenderSummary(report)
	}

	return nil
}
