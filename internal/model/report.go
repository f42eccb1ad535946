package model

import (
	"sort"
	"time"
)

// Report represents the complete run report for one tidied table
type Report struct {
	Source      string    `json:"source"`           // Input file that was tidied
	Output      string    `json:"output,omitempty"` // Tidy table path, if written
	ProcessedAt time.Time `json:"processed_at"`     // When the run occurred

	Stats    Stats        `json:"stats"`              // Stage-by-stage counters
	Labels   []LabelCount `json:"inheritance_labels"` // Frequency table, sorted
	Score    Score        `json:"score"`              // Annotation completeness index
	Findings []Finding    `json:"findings,omitempty"` // Invariant check results

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (separate, never affects rows)
}

// Stats accumulates per-stage counters. One accumulator is threaded
// through the pipeline explicitly; it is not shared across runs.
type Stats struct {
	Records            int `json:"records"`                   // rows read from the source table
	RecordsAnnotated   int `json:"records_annotated"`         // rows with a phenotype annotation
	LinesSkipped       int `json:"lines_skipped,omitempty"`   // malformed source lines dropped by the reader
	Entries            int `json:"entries"`                   // entry strings after field splitting
	LongForm           int `json:"long_form"`                 // entries matching the long pattern
	LongFormExpanded   int `json:"long_form_expanded"`        // rows after inheritance expansion of long entries
	LongFormNoInherit  int `json:"long_form_no_inheritance"`  // long entries with no inheritance text
	ShortForm          int `json:"short_form"`                // entries matching the short pattern
	ShortFormNoInherit int `json:"short_form_no_inheritance"` // short entries with no inheritance text
	Unmatched          int `json:"unmatched"`                 // entries matching neither pattern
	NonDisease         int `json:"non_disease"`               // phenotypes with a leading "["
	Susceptibility     int `json:"susceptibility"`            // phenotypes with a leading "{"
	Provisional        int `json:"provisional"`               // phenotypes with a leading "?"
	TidyRows           int `json:"tidy_rows"`                 // output rows

	// Inheritance label frequencies. Use Frequencies() for a
	// deterministic ordering.
	InheritanceFreq map[string]int `json:"-"`
}

// NewStats creates an empty accumulator.
func NewStats() *Stats {
	return &Stats{
		InheritanceFreq: make(map[string]int),
	}
}

// CountLabel records one occurrence of an inheritance label.
func (s *Stats) CountLabel(label string) {
	if s.InheritanceFreq == nil {
		s.InheritanceFreq = make(map[string]int)
	}
	s.InheritanceFreq[label]++
}

// LabelCount is one row of the inheritance frequency table
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Frequencies returns the inheritance frequency table sorted by
// descending count, ties broken by label, so rendering is deterministic.
func (s *Stats) Frequencies() []LabelCount {
	counts := make([]LabelCount, 0, len(s.InheritanceFreq))
	for label, n := range s.InheritanceFreq {
		counts = append(counts, LabelCount{Label: label, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// Score represents the transparent annotation-completeness breakdown
type Score struct {
	Index      int      `json:"index"`      // Overall completeness index (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`    // Diagnostic signals with transparent data
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalClassification      SignalType = "classification_coverage" // Share of entries matching a pattern
	SignalInheritanceCoverage SignalType = "inheritance_coverage"    // Share of classified entries with a mode
	SignalProvisionalShare    SignalType = "provisional_share"       // Share of "?" phenotypes
	SignalSusceptibilityShare SignalType = "susceptibility_share"    // Share of "{" phenotypes
	SignalSparseAnnotation    SignalType = "sparse_annotation"       // Few records carry any annotation
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// Finding is one violated pipeline invariant detected after a run.
// Findings are observational; they do not fail the run unless the
// caller opts in.
type Finding struct {
	Invariant string `json:"invariant"`     // e.g. "row_count", "absence_propagation"
	Row       int    `json:"row,omitempty"` // source row handle, when row-scoped
	Detail    string `json:"detail"`
}

// LLMSummary contains optional LLM-generated run commentary.
// It never affects the tidy rows and is clearly separated.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
