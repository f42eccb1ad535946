package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/phenotidy/internal/cache"
	"github.com/ppiankov/phenotidy/internal/model"
)

// Long-form entries carry a 6-digit phenotype MIM number and a
// parenthesized mapping key, optionally followed by inheritance text:
//
//	Deafness, autosomal recessive 1A, 220290 (3), Autosomal recessive
//
// Short-form entries carry only the mapping key:
//
//	Deafness, autosomal recessive (3)
//
// Both patterns are anchored start-to-end. The greedy leading group makes
// the match split on the rightmost marker, so commas inside the phenotype
// name are never mistaken for the marker boundary.
var (
	longFormRe  = regexp.MustCompile(`^(.*), (\d{6}) \((\d)\)(?:, (.*))?$`)
	shortFormRe = regexp.MustCompile(`^(.*)\((\d)\)(?:, (.*))?$`)
)

// PhenotypeExtractor classifies phenotype entry strings against the two
// structural patterns and extracts their components.
type PhenotypeExtractor struct {
	cache cache.Cache // optional memo for entries repeated across genes
}

// NewPhenotypeExtractor creates a new phenotype extractor
func NewPhenotypeExtractor() *PhenotypeExtractor {
	return &PhenotypeExtractor{}
}

// NewCachedPhenotypeExtractor creates an extractor that memoizes
// classification results. Identical entry strings recur across a genemap
// (shared and digenic phenotypes), and classification is pure, so a
// cached result is always valid within a run.
func NewCachedPhenotypeExtractor(c cache.Cache) *PhenotypeExtractor {
	return &PhenotypeExtractor{cache: c}
}

// Classify applies the long pattern, then the short pattern, to a trimmed
// entry string. The long pattern goes first: the short pattern is a strict
// relaxation and would otherwise false-match long-form entries. An entry
// matching neither is returned as FormUnmatched, not an error: free text
// that fits neither shape is expected at low volume in real data.
//
// The returned ParsedPhenotype carries no row handle; the caller owns the
// association with the parent record.
func (e *PhenotypeExtractor) Classify(entry string) model.ParsedPhenotype {
	if e.cache != nil {
		if parsed, found := e.cache.Get(cache.Key(entry)); found {
			return parsed
		}
	}

	parsed := classify(entry)

	if e.cache != nil {
		e.cache.Set(cache.Key(entry), parsed)
	}

	return parsed
}

func classify(entry string) model.ParsedPhenotype {
	if m := longFormRe.FindStringSubmatch(entry); m != nil {
		return model.ParsedPhenotype{
			Form:        model.FormLong,
			Phenotype:   strings.TrimSpace(m[1]),
			MappingID:   atoiRef(m[2]),
			MappingKey:  atoiRef(m[3]),
			Inheritance: strRef(m[4]),
		}
	}

	if m := shortFormRe.FindStringSubmatch(entry); m != nil {
		// Short-form entries never carry a usable inheritance
		// annotation; whatever sits in the trailing position is
		// passed through verbatim, and an empty extraction is
		// normalized to absent. This mirrors the source data, it is
		// not repaired here.
		return model.ParsedPhenotype{
			Form:        model.FormShort,
			Phenotype:   strings.TrimSpace(m[1]),
			MappingKey:  atoiRef(m[2]),
			Inheritance: strRef(m[3]),
		}
	}

	return model.ParsedPhenotype{
		Form:      model.FormUnmatched,
		Phenotype: entry,
	}
}

// atoiRef converts an all-digit submatch to an optional int.
func atoiRef(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// strRef normalizes an empty submatch to absent.
func strRef(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

