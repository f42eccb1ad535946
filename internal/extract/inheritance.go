package extract

import (
	"strings"

	"github.com/ppiankov/phenotidy/internal/model"
)

// ExpandInheritance turns one classified phenotype into one row per
// inheritance label. Compound inheritance text is split on ", " and each
// label trimmed; labels are atomic beyond that (a label like
// "?Autosomal dominant" is never split further). A phenotype with no
// inheritance text expands to exactly one row with an absent label.
// Label order and multiplicity are preserved; nothing is deduplicated.
func ExpandInheritance(p model.ParsedPhenotype) []model.PhenotypeRow {
	if p.Inheritance == nil {
		return []model.PhenotypeRow{{
			Row:       p.Row,
			Phenotype: p.Phenotype,
		}}
	}

	labels := strings.Split(*p.Inheritance, ", ")
	rows := make([]model.PhenotypeRow, 0, len(labels))
	for _, label := range labels {
		label := strings.TrimSpace(label)
		rows = append(rows, model.PhenotypeRow{
			Row:         p.Row,
			Phenotype:   p.Phenotype,
			Inheritance: &label,
		})
	}

	return rows
}
