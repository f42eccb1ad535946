package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/phenotidy/internal/model"
)

// Header is the column ordering of the tidy output table: the 13
// pass-through genemap columns followed by one phenotype and one
// inheritance column.
var Header = []string{
	"chromosome",
	"genomic_position_start",
	"genomic_position_end",
	"cyto_location",
	"computed_cyto_location",
	"mim_number",
	"gene_symbols",
	"gene_name",
	"approved_gene_symbol",
	"entrez_gene_id",
	"ensembl_gene_id",
	"comments",
	"mouse_gene_id",
	"phenotype",
	"inheritance",
}

// Writer renders tidy rows as a tab-separated table with a header row.
// Fields are written verbatim; an absent inheritance label becomes an
// empty cell.
type Writer struct{}

// NewWriter creates a new tidy table writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteFile writes the tidy table to disk.
func (w *Writer) WriteFile(rows []model.TidyRow, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	return w.Write(rows, f)
}

// Write writes the tidy table to an io.Writer.
func (w *Writer) Write(rows []model.TidyRow, dst io.Writer) error {
	buf := bufio.NewWriter(dst)

	if _, err := buf.WriteString(strings.Join(Header, "\t") + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		inheritance := ""
		if row.Inheritance != nil {
			inheritance = *row.Inheritance
		}

		cells := []string{
			row.Chromosome,
			row.Start,
			row.End,
			row.CytoLocation,
			row.ComputedCytoLocation,
			row.MIMNumber,
			row.GeneSymbols,
			row.GeneName,
			row.ApprovedSymbol,
			row.EntrezGeneID,
			row.EnsemblGeneID,
			row.Comments,
			row.MouseGeneID,
			row.Phenotype,
			inheritance,
		}

		if _, err := buf.WriteString(strings.Join(cells, "\t") + "\n"); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return buf.Flush()
}
