package scanner

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
)

// ToolSemgrep is the tool name recorded on semgrep findings.
const ToolSemgrep = "semgrep"

// semgrepOutput mirrors the subset of semgrep's JSON output the normalizer
// consumes.
type semgrepOutput struct {
	Results []struct {
		CheckID string `json:"check_id"`
		Path    string `json:"path"`
		Start   struct {
			Line int `json:"line"`
		} `json:"start"`
		Extra struct {
			Message  string `json:"message"`
			Severity string `json:"severity"`
			Lines    string `json:"lines"`
			Metadata struct {
				Cwe any `json:"cwe"` // string | []string | absent
			} `json:"metadata"`
		} `json:"extra"`
	} `json:"results"`
}

// Semgrep runs semgrep against a target path and normalizes its results.
type Semgrep struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewSemgrep creates a semgrep runner with the given subprocess timeout.
func NewSemgrep(timeout time.Duration, logger *slog.Logger) *Semgrep {
	if logger == nil {
		logger = slog.Default()
	}
	return &Semgrep{timeout: timeout, logger: logger}
}

// Name returns the tool name.
func (s *Semgrep) Name() string { return ToolSemgrep }

// Scan invokes semgrep with auto rules and JSON output and maps each result
// to a Finding. Tool failure or malformed output yields zero findings, never
// an error.
func (s *Semgrep) Scan(ctx context.Context, target string) []finding.Finding {
	result := RunCommand(ctx, s.timeout, "semgrep",
		"--config=auto",
		"--json",
		"--quiet",
		target,
	)

	if !result.Success {
		s.logger.Warn("semgrep did not exit cleanly",
			"exit_code", result.ExitCode,
			"stderr", strings.TrimSpace(result.Stderr),
		)
	}

	return s.normalize(result.Stdout)
}

// normalize maps raw semgrep JSON to findings. An empty or undecodable
// document is treated as zero findings.
func (s *Semgrep) normalize(raw string) []finding.Finding {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out semgrepOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("semgrep output is not valid JSON, treating as zero findings", "error", err)
		return nil
	}

	findings := make([]finding.Finding, 0, len(out.Results))
	for _, r := range out.Results {
		message := r.Extra.Message
		if message == "" {
			message = r.CheckID
		}

		findings = append(findings, finding.Finding{
			Tool:     ToolSemgrep,
			Severity: finding.ParseSeverity(r.Extra.Severity),
			Title:    lastSegment(r.CheckID),
			Message:  message,
			File:     r.Path,
			Line:     safeLine(r.Start.Line),
			Code:     r.Extra.Lines,
			CWE:      normalizeCWE(r.Extra.Metadata.Cwe),
		})
	}
	return findings
}

// lastSegment derives a short title from a dotted semgrep check ID, e.g.
// "python.lang.security.audit.sqli.sqli" -> "sqli".
func lastSegment(checkID string) string {
	if checkID == "" {
		return "Unknown"
	}
	parts := strings.Split(checkID, ".")
	return parts[len(parts)-1]
}

// normalizeCWE accepts a single string or a list and always returns a list.
func normalizeCWE(v any) []string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return []string{t}
		}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// safeLine clamps negative line numbers to 0, the "no line information" value.
func safeLine(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
