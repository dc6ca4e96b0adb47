package finding

// Finding is the canonical unit of work flowing through the pipeline. One raw
// tool record becomes one Finding in the normalizer; the classifier and triage
// engine mutate Severity (and triage attaches LLMAnalysis); emitters treat the
// collection as immutable input.
type Finding struct {
	Tool     string   `json:"tool"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	File     string   `json:"file"`
	// Line is 1-based; 0 means "no line information".
	Line int      `json:"line"`
	Code string   `json:"code"`
	CWE  []string `json:"cwe"`

	// LLMAnalysis is absent until the triage engine runs, and then holds
	// either the parsed enrichment or a fallback payload. It is never
	// silently dropped on parse failure.
	LLMAnalysis *Enrichment `json:"llm_analysis,omitempty"`
}

// Enrichment is the triage payload attached to a finding. Exactly one of three
// shapes is populated:
//
//   - the five structured fields, when the LLM response contained a parseable
//     JSON object;
//   - RawResponse (plus ParseError when the embedded JSON was invalid), when
//     it did not;
//   - Err, when the backend call itself failed.
//
// All fields are omitempty so the emitted JSON carries only the populated shape.
type Enrichment struct {
	Exploitability int    `json:"exploitability,omitempty"`
	Impact         string `json:"impact,omitempty"`
	FalsePositive  string `json:"false_positive,omitempty"`
	Remediation    string `json:"remediation,omitempty"`
	Priority       string `json:"priority,omitempty"`

	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"parse_error,omitempty"`

	Err string `json:"error,omitempty"`
}

// IsError reports whether the enrichment records a failed backend call.
func (e *Enrichment) IsError() bool {
	return e != nil && e.Err != ""
}

// IsFallback reports whether the enrichment is a raw-response fallback rather
// than a parsed payload.
func (e *Enrichment) IsFallback() bool {
	return e != nil && e.RawResponse != ""
}

// Summary holds per-severity finding counts for the report header. INFO is
// tracked for completeness but the report summary block mirrors the four
// actionable buckets.
type Summary struct {
	Critical int `json:"CRITICAL"`
	High     int `json:"HIGH"`
	Medium   int `json:"MEDIUM"`
	Low      int `json:"LOW"`
	Info     int `json:"INFO,omitempty"`
}

// Summarize counts findings per severity bucket.
func Summarize(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityHigh:
			s.High++
		case SeverityMedium:
			s.Medium++
		case SeverityLow:
			s.Low++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}
