package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// scanIDLayout names the per-run folder and scan ID, e.g. 2026-08-26_14-03-07.
const scanIDLayout = "2006-01-02_15-04-05"

// Document is the findings.json envelope. The findings array is already in
// final report order; emitters never re-sort.
type Document struct {
	ScanID        string            `json:"scan_id"`
	RunID         string            `json:"run_id"`
	Timestamp     string            `json:"timestamp"`
	TotalFindings int               `json:"total_findings"`
	Summary       finding.Summary   `json:"summary"`
	Findings      []finding.Finding `json:"findings"`
}

// NewDocument assembles the report envelope for a finished run.
func NewDocument(now time.Time, findings []finding.Finding) Document {
	return Document{
		ScanID:        now.Format(scanIDLayout),
		RunID:         uuid.New().String(),
		Timestamp:     now.Format(time.RFC3339),
		TotalFindings: len(findings),
		Summary:       finding.Summarize(findings),
		Findings:      findings,
	}
}

// WriteJSON writes the pretty-printed findings document to path.
func WriteJSON(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return types.WrapError(types.REPORT_RENDER_FAILED, "failed to marshal findings document", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return types.WrapError(types.REPORT_WRITE_FAILED, "failed to write JSON report", err)
	}

	return nil
}
