package pipeline

import "github.com/ppiankov/phenotidy/internal/model"

// Assemble joins each expanded phenotype row back to its parent record
// by row handle, producing the final tidy row set. The handle was
// established when the annotation field was split and carried through
// unchanged; it is never recomputed from content, since phenotype text
// is not unique enough to serve as a join key. Records with no expanded
// rows contribute nothing.
func Assemble(records []model.GeneRecord, expanded []model.PhenotypeRow) []model.TidyRow {
	rows := make([]model.TidyRow, 0, len(expanded))

	for _, e := range expanded {
		if e.Row < 0 || e.Row >= len(records) {
			// A dangling handle cannot be joined; skip it. The
			// assembler invariant check reports the mismatch.
			continue
		}
		rows = append(rows, model.NewTidyRow(records[e.Row], e.Phenotype, e.Inheritance))
	}

	return rows
}
