package model

// GeneRecord represents one row of a genemap table. All descriptive
// fields are opaque pass-through payload; only Phenotypes is interpreted.
type GeneRecord struct {
	Chromosome           string `json:"chromosome"`
	Start                string `json:"genomic_position_start"`
	End                  string `json:"genomic_position_end"`
	CytoLocation         string `json:"cyto_location,omitempty"`
	ComputedCytoLocation string `json:"computed_cyto_location,omitempty"`
	MIMNumber            string `json:"mim_number"`
	GeneSymbols          string `json:"gene_symbols,omitempty"`
	GeneName             string `json:"gene_name,omitempty"`
	ApprovedSymbol       string `json:"approved_gene_symbol,omitempty"`
	EntrezGeneID         string `json:"entrez_gene_id,omitempty"`
	EnsemblGeneID        string `json:"ensembl_gene_id,omitempty"`
	Comments             string `json:"comments,omitempty"`
	Phenotypes           string `json:"phenotypes,omitempty"` // raw annotation field, often empty
	MouseGeneID          string `json:"mouse_gene_id,omitempty"`
}

// HasPhenotypes returns true if the record carries a phenotype annotation.
func (r *GeneRecord) HasPhenotypes() bool {
	return r.Phenotypes != ""
}

// TidyRow is one (gene, phenotype, inheritance) observation: the parent
// record's pass-through fields plus exactly one phenotype and at most one
// inheritance label. Rows are never merged or deduplicated.
type TidyRow struct {
	Chromosome           string  `json:"chromosome"`
	Start                string  `json:"genomic_position_start"`
	End                  string  `json:"genomic_position_end"`
	CytoLocation         string  `json:"cyto_location,omitempty"`
	ComputedCytoLocation string  `json:"computed_cyto_location,omitempty"`
	MIMNumber            string  `json:"mim_number"`
	GeneSymbols          string  `json:"gene_symbols,omitempty"`
	GeneName             string  `json:"gene_name,omitempty"`
	ApprovedSymbol       string  `json:"approved_gene_symbol,omitempty"`
	EntrezGeneID         string  `json:"entrez_gene_id,omitempty"`
	EnsemblGeneID        string  `json:"ensembl_gene_id,omitempty"`
	Comments             string  `json:"comments,omitempty"`
	MouseGeneID          string  `json:"mouse_gene_id,omitempty"`
	Phenotype            string  `json:"phenotype"`
	Inheritance          *string `json:"inheritance,omitempty"`
}

// NewTidyRow copies the pass-through fields of a parent record into an
// output row, dropping the consumed raw annotation field.
func NewTidyRow(parent GeneRecord, phenotype string, inheritance *string) TidyRow {
	return TidyRow{
		Chromosome:           parent.Chromosome,
		Start:                parent.Start,
		End:                  parent.End,
		CytoLocation:         parent.CytoLocation,
		ComputedCytoLocation: parent.ComputedCytoLocation,
		MIMNumber:            parent.MIMNumber,
		GeneSymbols:          parent.GeneSymbols,
		GeneName:             parent.GeneName,
		ApprovedSymbol:       parent.ApprovedSymbol,
		EntrezGeneID:         parent.EntrezGeneID,
		EnsemblGeneID:        parent.EnsemblGeneID,
		Comments:             parent.Comments,
		MouseGeneID:          parent.MouseGeneID,
		Phenotype:            phenotype,
		Inheritance:          inheritance,
	}
}
