package finding

import "strings"

// Severity represents a normalized severity bucket. Buckets are used both for
// classification and for the final report ordering.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// String returns the string representation of the Severity
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is one of the five buckets
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank returns the sort rank of the severity: CRITICAL=0 through INFO=4.
// Anything outside the five buckets ranks last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}

// ParseSeverity normalizes a tool-reported severity string. Unknown or empty
// values default to MEDIUM, the same default the scanners themselves use for
// unrated results.
func ParseSeverity(raw string) Severity {
	s := Severity(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return SeverityMedium
	}
	return s
}
