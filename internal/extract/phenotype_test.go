package extract

import (
	"testing"

	"github.com/ppiankov/phenotidy/internal/cache"
	"github.com/ppiankov/phenotidy/internal/model"
)

func TestClassify_LongForm(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	parsed := extractor.Classify("Deafness, autosomal recessive 1A, 220290 (3), Autosomal recessive")

	if parsed.Form != model.FormLong {
		t.Fatalf("expected long form, got %s", parsed.Form)
	}
	if parsed.Phenotype != "Deafness, autosomal recessive 1A" {
		t.Errorf("expected phenotype %q, got %q", "Deafness, autosomal recessive 1A", parsed.Phenotype)
	}
	if parsed.MappingID == nil || *parsed.MappingID != 220290 {
		t.Errorf("expected mapping id 220290, got %v", parsed.MappingID)
	}
	if parsed.MappingKey == nil || *parsed.MappingKey != 3 {
		t.Errorf("expected mapping key 3, got %v", parsed.MappingKey)
	}
	if parsed.Inheritance == nil || *parsed.Inheritance != "Autosomal recessive" {
		t.Errorf("expected inheritance %q, got %v", "Autosomal recessive", parsed.Inheritance)
	}
}

func TestClassify_LongForm_NoInheritance(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	parsed := extractor.Classify("Ovarian cancer, somatic, 167000 (3)")

	if parsed.Form != model.FormLong {
		t.Fatalf("expected long form, got %s", parsed.Form)
	}
	if parsed.Phenotype != "Ovarian cancer, somatic" {
		t.Errorf("expected phenotype %q, got %q", "Ovarian cancer, somatic", parsed.Phenotype)
	}
	if parsed.Inheritance != nil {
		t.Errorf("expected absent inheritance, got %q", *parsed.Inheritance)
	}
}

func TestClassify_ShortForm(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	// The phenotype text names a mode, but the short form carries no
	// usable inheritance annotation; this must be reproduced, not fixed
	parsed := extractor.Classify("Deafness, autosomal recessive (3)")

	if parsed.Form != model.FormShort {
		t.Fatalf("expected short form, got %s", parsed.Form)
	}
	if parsed.Phenotype != "Deafness, autosomal recessive" {
		t.Errorf("expected phenotype %q, got %q", "Deafness, autosomal recessive", parsed.Phenotype)
	}
	if parsed.MappingID != nil {
		t.Errorf("expected absent mapping id for short form, got %d", *parsed.MappingID)
	}
	if parsed.MappingKey == nil || *parsed.MappingKey != 3 {
		t.Errorf("expected mapping key 3, got %v", parsed.MappingKey)
	}
	if parsed.Inheritance != nil {
		t.Errorf("expected absent inheritance, got %q", *parsed.Inheritance)
	}
}

func TestClassify_RightmostMarker(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	// Embedded commas in the phenotype name must not be mistaken for
	// the marker boundary: split happens at the rightmost marker
	parsed := extractor.Classify("Mitchell-Riley syndrome, neonatal diabetes, and gallbladder agenesis, 601346 (3), Autosomal recessive")

	if parsed.Form != model.FormLong {
		t.Fatalf("expected long form, got %s", parsed.Form)
	}
	if parsed.Phenotype != "Mitchell-Riley syndrome, neonatal diabetes, and gallbladder agenesis" {
		t.Errorf("unexpected phenotype %q", parsed.Phenotype)
	}
	if parsed.MappingID == nil || *parsed.MappingID != 601346 {
		t.Errorf("expected mapping id 601346, got %v", parsed.MappingID)
	}
}

func TestClassify_TrailingCommaNormalizedToAbsent(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	parsed := extractor.Classify("Holoprosencephaly 9, 610829 (3), ")

	if parsed.Form != model.FormLong {
		t.Fatalf("expected long form, got %s", parsed.Form)
	}
	if parsed.Inheritance != nil {
		t.Errorf("expected empty inheritance normalized to absent, got %q", *parsed.Inheritance)
	}
}

func TestClassify_Unmatched(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	tests := []struct {
		name  string
		entry string
	}{
		{"bare comment", "see 147570"},
		{"no trailing marker", "Cataract, congenital"},
		{"empty entry", ""},
		{"marker not at end", "Deafness (3) with extra text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := extractor.Classify(tt.entry)
			if parsed.Form != model.FormUnmatched {
				t.Errorf("expected unmatched for %q, got %s", tt.entry, parsed.Form)
			}
			if parsed.Matched() {
				t.Errorf("expected Matched() false for %q", tt.entry)
			}
		})
	}
}

func TestClassify_AnchoredWholeEntry(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	// The whole entry must conform, not a substring
	parsed := extractor.Classify("prefix [Deafness, 220290 (3)] suffix")

	if parsed.Form != model.FormUnmatched {
		t.Errorf("expected unmatched for partially conforming entry, got %s", parsed.Form)
	}
}

func TestClassify_Markers(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	tests := []struct {
		entry          string
		nonDisease     bool
		susceptibility bool
		provisional    bool
	}{
		{"[Blood group, Lutheran system], 111200 (3)", true, false, false},
		{"{Hypertension, essential, susceptibility to}, 145500 (3)", false, true, false},
		{"?Ciliary dyskinesia, primary, 7, 611884 (3), Autosomal recessive", false, false, true},
		{"Deafness, autosomal recessive 1A, 220290 (3)", false, false, false},
	}

	for _, tt := range tests {
		parsed := extractor.Classify(tt.entry)
		if parsed.IsNonDisease() != tt.nonDisease {
			t.Errorf("%q: IsNonDisease() = %v, want %v", tt.entry, parsed.IsNonDisease(), tt.nonDisease)
		}
		if parsed.IsSusceptibility() != tt.susceptibility {
			t.Errorf("%q: IsSusceptibility() = %v, want %v", tt.entry, parsed.IsSusceptibility(), tt.susceptibility)
		}
		if parsed.IsProvisional() != tt.provisional {
			t.Errorf("%q: IsProvisional() = %v, want %v", tt.entry, parsed.IsProvisional(), tt.provisional)
		}
	}
}

func TestClassify_LongBeforeShort(t *testing.T) {
	extractor := NewPhenotypeExtractor()

	// A long-form entry also satisfies the short pattern; the long
	// pattern must win
	parsed := extractor.Classify("Deafness, autosomal recessive 1A, 220290 (3)")

	if parsed.Form != model.FormLong {
		t.Fatalf("expected long form, got %s", parsed.Form)
	}
	if parsed.MappingID == nil {
		t.Error("expected mapping id from long pattern")
	}
}

func TestClassify_Cached(t *testing.T) {
	extractor := NewCachedPhenotypeExtractor(cache.NewMemoryCache())

	entry := "Deafness, autosomal recessive 1A, 220290 (3), Autosomal recessive"

	first := extractor.Classify(entry)
	second := extractor.Classify(entry)

	if first.Form != second.Form || first.Phenotype != second.Phenotype {
		t.Error("expected identical classification from cache")
	}
	if second.MappingID == nil || *second.MappingID != 220290 {
		t.Errorf("expected cached mapping id 220290, got %v", second.MappingID)
	}
	if second.Row != 0 {
		t.Errorf("expected cached result to carry no row handle, got %d", second.Row)
	}
}
