package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/phenotidy/internal/model"
	"github.com/ppiankov/phenotidy/internal/table"
)

func testRecords() []model.GeneRecord {
	return []model.GeneRecord{
		{Chromosome: "chr1", Start: "1", End: "2", MIMNumber: "100000"},
		{
			Chromosome: "chr1", Start: "10", End: "20", MIMNumber: "121011",
			GeneSymbols: "GJB2",
			Phenotypes:  "Deafness, autosomal recessive 1A, 220290 (3), Autosomal recessive; Deafness, autosomal recessive (3)",
		},
		{
			Chromosome: "chr6", Start: "30", End: "40", MIMNumber: "601410",
			Phenotypes: "Diabetes mellitus, transient neonatal, 3, 610582 (3), Digenic dominant, Digenic recessive",
		},
		{Chromosome: "chr7", Start: "50", End: "60", MIMNumber: "147570", Phenotypes: "see 147570"},
		{
			Chromosome: "chr19", Start: "70", End: "80", MIMNumber: "111200",
			Phenotypes: "[Blood group, Lutheran system], 111200 (3)",
		},
	}
}

func TestPipeline_Tidy(t *testing.T) {
	p := NewPipeline(model.DefaultConfig())

	result := p.Tidy(testRecords())
	stats := result.Report.Stats

	if stats.Records != 5 {
		t.Errorf("expected 5 records, got %d", stats.Records)
	}
	if stats.RecordsAnnotated != 4 {
		t.Errorf("expected 4 annotated records, got %d", stats.RecordsAnnotated)
	}
	if stats.Entries != 5 {
		t.Errorf("expected 5 entries, got %d", stats.Entries)
	}
	if stats.LongForm != 3 {
		t.Errorf("expected 3 long-form entries, got %d", stats.LongForm)
	}
	if stats.ShortForm != 1 {
		t.Errorf("expected 1 short-form entry, got %d", stats.ShortForm)
	}
	if stats.Unmatched != 1 {
		t.Errorf("expected 1 unmatched entry, got %d", stats.Unmatched)
	}
	if stats.LongFormExpanded != 4 {
		t.Errorf("expected 4 rows from long-form expansion, got %d", stats.LongFormExpanded)
	}
	if stats.LongFormNoInherit != 1 {
		t.Errorf("expected 1 long-form entry without inheritance, got %d", stats.LongFormNoInherit)
	}
	if stats.ShortFormNoInherit != 1 {
		t.Errorf("expected 1 short-form entry without inheritance, got %d", stats.ShortFormNoInherit)
	}
	if stats.NonDisease != 1 {
		t.Errorf("expected 1 non-disease phenotype, got %d", stats.NonDisease)
	}
	if stats.TidyRows != 5 {
		t.Errorf("expected 5 tidy rows, got %d", stats.TidyRows)
	}

	if len(result.Report.Findings) != 0 {
		t.Errorf("expected no invariant findings, got %v", result.Report.Findings)
	}
}

// TestPipeline_RowCountLaw verifies that each record produces
// sum(max(1, labels)) rows over its classified entries.
func TestPipeline_RowCountLaw(t *testing.T) {
	p := NewPipeline(model.DefaultConfig())
	result := p.Tidy(testRecords())

	expected := make(map[int]int)
	for _, parsed := range result.Parsed {
		labels := 1
		if parsed.Inheritance != nil {
			labels = len(strings.Split(*parsed.Inheritance, ", "))
		}
		expected[parsed.Row] += labels
	}

	actual := make(map[int]int)
	for _, e := range result.Expanded {
		actual[e.Row]++
	}

	for row, want := range expected {
		if actual[row] != want {
			t.Errorf("row %d: expected %d expanded rows, got %d", row, want, actual[row])
		}
	}

	// The assembler join is 1:1
	if len(result.Rows) != len(result.Expanded) {
		t.Errorf("expected %d tidy rows, got %d", len(result.Expanded), len(result.Rows))
	}
}

func TestPipeline_DroppedRecords(t *testing.T) {
	p := NewPipeline(model.DefaultConfig())
	result := p.Tidy(testRecords())

	// Records 0 (no annotation) and 3 (unmatched entry) contribute no rows
	for _, row := range result.Rows {
		if row.MIMNumber == "100000" || row.MIMNumber == "147570" {
			t.Errorf("expected record %s to be dropped, found row with phenotype %q", row.MIMNumber, row.Phenotype)
		}
	}
}

func TestPipeline_MultiInheritanceRows(t *testing.T) {
	p := NewPipeline(model.DefaultConfig())
	result := p.Tidy(testRecords())

	// The compound inheritance text expands to two rows differing only
	// in the label
	var labels []string
	for _, row := range result.Rows {
		if row.Phenotype == "Diabetes mellitus, transient neonatal, 3" {
			if row.Inheritance == nil {
				t.Fatal("expected a label on each expanded row")
			}
			labels = append(labels, *row.Inheritance)
		}
	}

	if len(labels) != 2 || labels[0] != "Digenic dominant" || labels[1] != "Digenic recessive" {
		t.Errorf("expected [Digenic dominant, Digenic recessive], got %v", labels)
	}
}

func TestPipeline_FrequencyTable(t *testing.T) {
	p := NewPipeline(model.DefaultConfig())
	result := p.Tidy(testRecords())

	freq := result.Report.Stats.InheritanceFreq
	for _, label := range []string{"Autosomal recessive", "Digenic dominant", "Digenic recessive"} {
		if freq[label] != 1 {
			t.Errorf("expected %q counted once, got %d", label, freq[label])
		}
	}

	if len(result.Report.Labels) != 3 {
		t.Errorf("expected 3 distinct labels, got %d", len(result.Report.Labels))
	}
}

// TestPipeline_Determinism checks that two runs over the same records
// render byte-identical tidy tables.
func TestPipeline_Determinism(t *testing.T) {
	p := NewPipeline(model.DefaultConfig())
	records := testRecords()

	first := p.Tidy(records)
	second := p.Tidy(records)

	var a, b bytes.Buffer
	if err := table.NewWriter().Write(first.Rows, &a); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := table.NewWriter().Write(second.Rows, &b); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("expected byte-identical output across runs")
	}
}

func TestPipeline_TidyFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "genemap.txt")

	content := strings.Join([]string{
		"# comment line",
		strings.Join([]string{
			"chr1", "2160133", "2241558", "1p36.33", "1p36.33", "147571", "SKI",
			"SKI oncogene", "SKI", "6497", "ENSG00000157933", "",
			"Shprintzen-Goldberg syndrome, 182212 (3), Autosomal dominant", "",
		}, "\t"),
		"malformed line",
	}, "\n")

	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := model.DefaultConfig()
	cfg.Output.Summary = false
	p := NewPipeline(cfg)

	result, err := p.TidyFile(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Report.Source != input {
		t.Errorf("expected source %q, got %q", input, result.Report.Source)
	}
	if result.Report.Stats.LinesSkipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", result.Report.Stats.LinesSkipped)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 tidy row, got %d", len(result.Rows))
	}
	if result.Rows[0].Phenotype != "Shprintzen-Goldberg syndrome" {
		t.Errorf("unexpected phenotype %q", result.Rows[0].Phenotype)
	}

	// Render and verify the outputs land on disk
	out := filepath.Join(dir, "genemap.tidy.tsv")
	report := filepath.Join(dir, "genemap.report.json")
	if err := p.Render(result, out, report, false); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(table.Header, "\t") {
		t.Errorf("unexpected header %q", lines[0])
	}

	if _, err := os.Stat(report); err != nil {
		t.Errorf("expected report file: %v", err)
	}
}

func TestPipeline_NoCacheMatchesCached(t *testing.T) {
	records := testRecords()

	cached := NewPipeline(model.DefaultConfig())

	uncachedCfg := model.DefaultConfig()
	uncachedCfg.Cache.Enabled = false
	uncached := NewPipeline(uncachedCfg)

	a := cached.Tidy(records)
	b := uncached.Tidy(records)

	if len(a.Rows) != len(b.Rows) {
		t.Fatalf("expected identical row counts, got %d and %d", len(a.Rows), len(b.Rows))
	}
	for i := range a.Rows {
		if a.Rows[i].Phenotype != b.Rows[i].Phenotype {
			t.Errorf("row %d: phenotype mismatch %q vs %q", i, a.Rows[i].Phenotype, b.Rows[i].Phenotype)
		}
	}
}
