package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/phenotidy/internal/model"
)

// Column layout of a genemap table (tab-separated, no header row).
const (
	colChromosome = iota
	colStart
	colEnd
	colCytoLocation
	colComputedCytoLocation
	colMIMNumber
	colGeneSymbols
	colGeneName
	colApprovedSymbol
	colEntrezGeneID
	colEnsemblGeneID
	colComments
	colPhenotypes
	colMouseGeneID

	columnCount
)

// Reader loads a genemap table into memory. The table is expected to fit
// comfortably in memory at this data volume (tens of thousands of rows).
type Reader struct {
	columns       int
	commentPrefix string
}

// NewReader creates a reader for the given input configuration.
func NewReader(cfg model.InputConfig) *Reader {
	columns := cfg.Columns
	if columns <= 0 {
		columns = columnCount
	}
	prefix := cfg.CommentPrefix
	if prefix == "" {
		prefix = "#"
	}
	return &Reader{columns: columns, commentPrefix: prefix}
}

// ReadFile reads a genemap file from disk. The slice index of each record
// is its row handle for the rest of the pipeline.
func (r *Reader) ReadFile(path string) ([]model.GeneRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return r.Read(f)
}

// Read reads genemap records from an io.Reader, skipping comment lines
// and counting (but not failing on) lines with the wrong column count.
func (r *Reader) Read(src io.Reader) ([]model.GeneRecord, int, error) {
	var records []model.GeneRecord
	skipped := 0

	scanner := bufio.NewScanner(src)
	// Annotation fields can make lines long
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, r.commentPrefix) {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != r.columns {
			skipped++
			continue
		}

		records = append(records, model.GeneRecord{
			Chromosome:           cols[colChromosome],
			Start:                cols[colStart],
			End:                  cols[colEnd],
			CytoLocation:         cols[colCytoLocation],
			ComputedCytoLocation: cols[colComputedCytoLocation],
			MIMNumber:            cols[colMIMNumber],
			GeneSymbols:          cols[colGeneSymbols],
			GeneName:             cols[colGeneName],
			ApprovedSymbol:       cols[colApprovedSymbol],
			EntrezGeneID:         cols[colEntrezGeneID],
			EnsemblGeneID:        cols[colEnsemblGeneID],
			Comments:             cols[colComments],
			Phenotypes:           cols[colPhenotypes],
			MouseGeneID:          cols[colMouseGeneID],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read input: %w", err)
	}

	return records, skipped, nil
}
