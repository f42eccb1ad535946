package extract

import "strings"

// SplitAnnotation splits a raw multi-phenotype annotation field into
// independent entry strings. Entries are separated by ";" and trimmed of
// surrounding whitespace. An empty or absent field yields nil; the parent
// record is then dropped from downstream processing. Splitting is total
// and preserves source left-to-right ordering.
func SplitAnnotation(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}

	parts := strings.Split(field, ";")
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		entries = append(entries, strings.TrimSpace(part))
	}

	return entries
}
