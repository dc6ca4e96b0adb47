package finding

import "fmt"

// dedupeKey builds the uniqueness key for a finding. Two results reported at
// the same file and line under the same title are the same issue, regardless
// of which tool saw it first.
func dedupeKey(f Finding) string {
	return fmt.Sprintf("%s:%d:%s", f.File, f.Line, f.Title)
}

// Dedupe removes duplicate findings, keeping the first occurrence of each
// (file, line, title) key in input order. The dedup is order-preserving and
// first-wins: fields from later duplicates are not merged.
func Dedupe(findings []Finding) []Finding {
	seen := make(map[string]struct{}, len(findings))
	unique := make([]Finding, 0, len(findings))

	for _, f := range findings {
		key := dedupeKey(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, f)
	}

	return unique
}
