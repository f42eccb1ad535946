package model

import "strings"

// PhenotypeForm classifies which structural pattern an entry matched
type PhenotypeForm string

const (
	FormLong      PhenotypeForm = "long"      // phenotype, 6-digit MIM number, mapping key
	FormShort     PhenotypeForm = "short"     // phenotype and mapping key only
	FormUnmatched PhenotypeForm = "unmatched" // neither pattern; excluded from output
)

// ParsedPhenotype is the structured result of classifying one entry
// string. Optional fields are pointers: nil means absent, never a
// sentinel string. Row is the handle back to the parent record.
type ParsedPhenotype struct {
	Row         int           `json:"row"`
	Form        PhenotypeForm `json:"form"`
	Phenotype   string        `json:"phenotype"`
	MappingID   *int          `json:"mapping_id,omitempty"`   // 6-digit identifier, long form only
	MappingKey  *int          `json:"mapping_key,omitempty"`  // 1-4 confidence code, passed through verbatim
	Inheritance *string       `json:"inheritance,omitempty"`  // raw, possibly compound
}

// Matched reports whether the entry matched either structural pattern.
func (p *ParsedPhenotype) Matched() bool {
	return p.Form == FormLong || p.Form == FormShort
}

// IsNonDisease reports the leading "[" marker (non-disease phenotype).
func (p *ParsedPhenotype) IsNonDisease() bool {
	return strings.HasPrefix(p.Phenotype, "[")
}

// IsSusceptibility reports the leading "{" marker (susceptibility to
// multifactorial disease or infection).
func (p *ParsedPhenotype) IsSusceptibility() bool {
	return strings.HasPrefix(p.Phenotype, "{")
}

// IsProvisional reports the leading "?" marker (provisional mapping).
func (p *ParsedPhenotype) IsProvisional() bool {
	return strings.HasPrefix(p.Phenotype, "?")
}

// PhenotypeRow is one expanded observation: a classified phenotype
// carrying at most one inheritance label. A phenotype with no
// inheritance text expands to exactly one row with a nil label.
type PhenotypeRow struct {
	Row         int     `json:"row"`
	Phenotype   string  `json:"phenotype"`
	Inheritance *string `json:"inheritance,omitempty"`
}
