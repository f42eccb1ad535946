package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/phenotidy/internal/model"
)

// Validator checks pipeline invariants over a completed run: the row
// count law, absence propagation, and the 1:1 assembler join. Findings
// are observational; the caller decides whether they fail the run.
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Check verifies the run invariants and returns one finding per
// violation. parsed holds the classified entries (matched forms only),
// expanded the per-label rows, and rows the assembled output.
func (v *Validator) Check(parsed []model.ParsedPhenotype, expanded []model.PhenotypeRow, rows []model.TidyRow) []model.Finding {
	var findings []model.Finding

	findings = append(findings, v.checkRowCounts(parsed, expanded)...)
	findings = append(findings, v.checkAbsencePropagation(parsed, expanded)...)
	findings = append(findings, v.checkAssembly(expanded, rows)...)

	return findings
}

// checkRowCounts verifies that each record's expanded rows equal the sum
// over its classified entries of max(1, number of inheritance labels).
func (v *Validator) checkRowCounts(parsed []model.ParsedPhenotype, expanded []model.PhenotypeRow) []model.Finding {
	expected := make(map[int]int)
	for _, p := range parsed {
		if !p.Matched() {
			continue
		}
		labels := 1
		if p.Inheritance != nil {
			labels = len(strings.Split(*p.Inheritance, ", "))
		}
		expected[p.Row] += labels
	}

	actual := make(map[int]int)
	for _, e := range expanded {
		actual[e.Row]++
	}

	var findings []model.Finding
	for row, want := range expected {
		if got := actual[row]; got != want {
			findings = append(findings, model.Finding{
				Invariant: "row_count",
				Row:       row,
				Detail:    fmt.Sprintf("expected %d expanded rows, got %d", want, got),
			})
		}
	}
	for row := range actual {
		if _, ok := expected[row]; !ok {
			findings = append(findings, model.Finding{
				Invariant: "row_count",
				Row:       row,
				Detail:    "expanded rows exist for a record with no classified entries",
			})
		}
	}

	return findings
}

// checkAbsencePropagation verifies that every classified entry without
// inheritance text produced exactly one row with an absent label.
func (v *Validator) checkAbsencePropagation(parsed []model.ParsedPhenotype, expanded []model.PhenotypeRow) []model.Finding {
	type key struct {
		row       int
		phenotype string
	}

	expected := make(map[key]int)
	for _, p := range parsed {
		if p.Matched() && p.Inheritance == nil {
			expected[key{p.Row, p.Phenotype}]++
		}
	}

	actual := make(map[key]int)
	for _, e := range expanded {
		if e.Inheritance == nil {
			actual[key{e.Row, e.Phenotype}]++
		}
	}

	var findings []model.Finding
	for k, want := range expected {
		if got := actual[k]; got != want {
			findings = append(findings, model.Finding{
				Invariant: "absence_propagation",
				Row:       k.row,
				Detail:    fmt.Sprintf("%q: expected %d rows with absent inheritance, got %d", k.phenotype, want, got),
			})
		}
	}

	return findings
}

// checkAssembly verifies that the assembler joined every expanded row to
// a parent record exactly once.
func (v *Validator) checkAssembly(expanded []model.PhenotypeRow, rows []model.TidyRow) []model.Finding {
	if len(expanded) == len(rows) {
		return nil
	}

	return []model.Finding{{
		Invariant: "assembler_join",
		Detail:    fmt.Sprintf("expected %d tidy rows, got %d", len(expanded), len(rows)),
	}}
}
