package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
)

// ToolBandit is the tool name recorded on bandit findings.
const ToolBandit = "bandit"

// banditOutput mirrors the subset of bandit's JSON output the normalizer
// consumes.
type banditOutput struct {
	Results []struct {
		TestName      string `json:"test_name"`
		IssueSeverity string `json:"issue_severity"`
		IssueText     string `json:"issue_text"`
		Filename      string `json:"filename"`
		LineNumber    int    `json:"line_number"`
		Code          string `json:"code"`
		IssueCwe      *struct {
			ID json.Number `json:"id"`
		} `json:"issue_cwe"`
	} `json:"results"`
}

// Bandit runs the bandit security linter against a target path and normalizes
// its results.
type Bandit struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewBandit creates a bandit runner with the given subprocess timeout.
func NewBandit(timeout time.Duration, logger *slog.Logger) *Bandit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bandit{timeout: timeout, logger: logger}
}

// Name returns the tool name.
func (b *Bandit) Name() string { return ToolBandit }

// Scan invokes bandit recursively with JSON output, reporting LOW and above.
// Tool failure or malformed output yields zero findings, never an error.
// Bandit exits non-zero whenever it reports issues, so the exit code alone is
// not treated as a failure.
func (b *Bandit) Scan(ctx context.Context, target string) []finding.Finding {
	result := RunCommand(ctx, b.timeout, "bandit",
		"-r", target,
		"-f", "json",
		"-ll",
	)

	if result.Stdout == "" && result.Stderr != "" {
		b.logger.Warn("bandit produced no output",
			"exit_code", result.ExitCode,
			"stderr", strings.TrimSpace(result.Stderr),
		)
	}

	return b.normalize(result.Stdout)
}

// normalize maps raw bandit JSON to findings. An empty or undecodable
// document is treated as zero findings.
func (b *Bandit) normalize(raw string) []finding.Finding {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out banditOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		b.logger.Warn("bandit output is not valid JSON, treating as zero findings", "error", err)
		return nil
	}

	findings := make([]finding.Finding, 0, len(out.Results))
	for _, r := range out.Results {
		title := r.TestName
		if title == "" {
			title = "Unknown"
		}

		var cwe []string
		if r.IssueCwe != nil && r.IssueCwe.ID.String() != "" {
			cwe = []string{fmt.Sprintf("CWE-%s", r.IssueCwe.ID.String())}
		}

		findings = append(findings, finding.Finding{
			Tool:     ToolBandit,
			Severity: finding.ParseSeverity(r.IssueSeverity),
			Title:    title,
			Message:  r.IssueText,
			File:     r.Filename,
			Line:     safeLine(r.LineNumber),
			Code:     r.Code,
			CWE:      cwe,
		})
	}
	return findings
}
