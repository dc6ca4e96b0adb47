package finding

import "strings"

// Classifier rewrites finding severities based on keyword matches against the
// finding message. Keyword-based domain classification is trusted over the
// severities the tools report, so a match forces the bucket.
//
// Matching is case-insensitive substring matching. The critical check runs
// first and is exclusive: a finding matching both lists is CRITICAL.
type Classifier struct {
	critical []string
	high     []string
}

// NewClassifier creates a Classifier from the two keyword lists. Keywords are
// lowered once at construction.
func NewClassifier(critical, high []string) *Classifier {
	return &Classifier{
		critical: lowerAll(critical),
		high:     lowerAll(high),
	}
}

// Buckets partitions findings into the critical-matching, high-matching, and
// remaining buckets, preserving input order within each, and forces the
// severity of the first two buckets to CRITICAL and HIGH respectively.
//
// Findings are mutated in place; the returned slices hold pointers into the
// input so later stages can keep mutating through them.
func (c *Classifier) Buckets(findings []Finding) (critical, high, other []*Finding) {
	critical = make([]*Finding, 0, len(findings))
	high = make([]*Finding, 0)
	other = make([]*Finding, 0)

	for i := range findings {
		f := &findings[i]
		msg := strings.ToLower(f.Message)
		switch {
		case matchesAny(msg, c.critical):
			f.Severity = SeverityCritical
			critical = append(critical, f)
		case matchesAny(msg, c.high):
			f.Severity = SeverityHigh
			high = append(high, f)
		default:
			other = append(other, f)
		}
	}

	return critical, high, other
}

// Classify applies the keyword override to every finding in place.
func (c *Classifier) Classify(findings []Finding) {
	c.Buckets(findings)
}

func matchesAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
