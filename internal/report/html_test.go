package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
)

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	now := time.Date(2026, 8, 26, 14, 3, 7, 0, time.UTC)

	require.NoError(t, WriteHTML(path, now, sampleFindings(), HTMLOptions{ContextLines: 4, ItemsPerPage: 20}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	// Findings and their enrichment are rendered.
	assert.Contains(t, html, "sqli")
	assert.Contains(t, html, "app/db.py")
	assert.Contains(t, html, "parameterize the query")
	assert.Contains(t, html, "exec_used")

	// Client-side filtering and pagination hooks are embedded.
	assert.Contains(t, html, "toggleFilter")
	assert.Contains(t, html, "changePage")
	assert.Contains(t, html, "itemsPerPage = 20")

	// Severity counters for the stat boxes.
	assert.Contains(t, html, "CRITICAL")
	assert.Contains(t, html, "HIGH")
}

func TestWriteHTML_FallsBackToToolSnippet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	findings := []finding.Finding{
		{
			Tool:     "bandit",
			Severity: finding.SeverityHigh,
			Title:    "exec_used",
			File:     filepath.Join(t.TempDir(), "does-not-exist.py"),
			Line:     9,
			Code:     "exec(payload)",
		},
	}

	require.NoError(t, WriteHTML(path, time.Now(), findings, HTMLOptions{ContextLines: 4}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exec(payload)")
}

func TestWriteHTML_EmptyFindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteHTML(path, time.Now(), nil, HTMLOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestWriteHTML_RawFallbackRendered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	findings := []finding.Finding{
		{
			Tool:     "semgrep",
			Severity: finding.SeverityMedium,
			Title:    "weird",
			File:     "x.py",
			Line:     1,
			LLMAnalysis: &finding.Enrichment{
				RawResponse: "The model rambled here instead of emitting JSON.",
			},
		},
	}

	require.NoError(t, WriteHTML(path, time.Now(), findings, HTMLOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "The model rambled here")
}
