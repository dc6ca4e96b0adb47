package triage

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

// bracePattern is the greedy brace-to-brace heuristic used to decide whether
// a response contained something JSON-shaped at all, so fallbacks can
// distinguish "no JSON anywhere" from "JSON-shaped but invalid".
var bracePattern = regexp.MustCompile(`(?s)\{.*\}`)

// enrichmentWire is the lenient decode target for the LLM payload. Models do
// not reliably type the exploitability score, so it is coerced after decode.
type enrichmentWire struct {
	Exploitability any    `json:"exploitability"`
	Impact         string `json:"impact"`
	FalsePositive  string `json:"false_positive"`
	Remediation    string `json:"remediation"`
	Priority       string `json:"priority"`
}

// ParseEnrichment turns a raw LLM response into an enrichment payload.
//
// Contract: the result is never nil and the response is never discarded.
//   - A parseable embedded JSON object yields the structured payload.
//   - A JSON-shaped substring that fails to parse yields a fallback carrying
//     the raw text and the parse error.
//   - A response with no JSON anywhere yields a fallback carrying only the
//     raw text.
func ParseEnrichment(raw string) *finding.Enrichment {
	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		// Nothing parseable. If a brace-to-brace candidate exists the
		// JSON inside it was invalid; record why it failed to parse.
		if candidate := bracePattern.FindString(raw); candidate != "" {
			var probe map[string]any
			if parseErr := json.Unmarshal([]byte(candidate), &probe); parseErr != nil {
				return &finding.Enrichment{
					RawResponse: raw,
					ParseError:  parseErr.Error(),
				}
			}
		}
		return &finding.Enrichment{RawResponse: raw}
	}

	var wire enrichmentWire
	if err := json.Unmarshal([]byte(jsonStr), &wire); err != nil {
		return &finding.Enrichment{
			RawResponse: raw,
			ParseError:  err.Error(),
		}
	}

	return &finding.Enrichment{
		Exploitability: coerceInt(wire.Exploitability),
		Impact:         wire.Impact,
		FalsePositive:  strings.ToUpper(strings.TrimSpace(wire.FalsePositive)),
		Remediation:    wire.Remediation,
		Priority:       strings.ToUpper(strings.TrimSpace(wire.Priority)),
	}
}

// coerceInt accepts the number, string, or absent forms models emit for the
// exploitability score.
func coerceInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}
