package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
)

const semgrepSample = `{
  "results": [
    {
      "check_id": "python.lang.security.audit.formatted-sql-query.formatted-sql-query",
      "path": "app/db.py",
      "start": {"line": 42},
      "extra": {
        "message": "Detected possible formatted SQL query",
        "severity": "ERROR",
        "lines": "cursor.execute(f\"SELECT * FROM users WHERE id = {uid}\")",
        "metadata": {"cwe": "CWE-89: SQL Injection"}
      }
    },
    {
      "check_id": "python.flask.security.audit.debug-enabled.debug-enabled",
      "path": "app/main.py",
      "start": {"line": 7},
      "extra": {
        "message": "Flask app run with debug=True",
        "severity": "WARNING",
        "lines": "app.run(debug=True)",
        "metadata": {"cwe": ["CWE-489", "CWE-215"]}
      }
    }
  ]
}`

func TestSemgrepNormalize(t *testing.T) {
	s := NewSemgrep(time.Minute, nil)

	findings := s.normalize(semgrepSample)
	require.Len(t, findings, 2)

	first := findings[0]
	assert.Equal(t, ToolSemgrep, first.Tool)
	// Semgrep's ERROR is not one of the five buckets and falls back to MEDIUM.
	assert.Equal(t, finding.SeverityMedium, first.Severity)
	assert.Equal(t, "formatted-sql-query", first.Title)
	assert.Equal(t, "Detected possible formatted SQL query", first.Message)
	assert.Equal(t, "app/db.py", first.File)
	assert.Equal(t, 42, first.Line)
	assert.Equal(t, []string{"CWE-89: SQL Injection"}, first.CWE)

	second := findings[1]
	assert.Equal(t, finding.SeverityMedium, second.Severity)
	assert.Equal(t, "debug-enabled", second.Title)
	assert.Equal(t, []string{"CWE-489", "CWE-215"}, second.CWE)
}

func TestSemgrepNormalize_MessageFallsBackToCheckID(t *testing.T) {
	s := NewSemgrep(time.Minute, nil)

	findings := s.normalize(`{"results": [{"check_id": "rules.custom.my-rule", "path": "x.py", "start": {"line": 1}, "extra": {"severity": "INFO"}}]}`)
	require.Len(t, findings, 1)
	assert.Equal(t, "my-rule", findings[0].Title)
	assert.Equal(t, "rules.custom.my-rule", findings[0].Message)
}

func TestSemgrepNormalize_MalformedJSON(t *testing.T) {
	s := NewSemgrep(time.Minute, nil)

	assert.Empty(t, s.normalize("not json at all"))
	assert.Empty(t, s.normalize(""))
	assert.Empty(t, s.normalize("   \n"))
}

func TestSemgrepNormalize_NegativeLineClamped(t *testing.T) {
	s := NewSemgrep(time.Minute, nil)

	findings := s.normalize(`{"results": [{"check_id": "a.b", "path": "x.py", "start": {"line": -3}, "extra": {"severity": "ERROR"}}]}`)
	require.Len(t, findings, 1)
	assert.Equal(t, 0, findings[0].Line)
}

func TestNormalizeCWE(t *testing.T) {
	assert.Equal(t, []string{"CWE-79"}, normalizeCWE("CWE-79"))
	assert.Equal(t, []string{"CWE-79", "CWE-80"}, normalizeCWE([]any{"CWE-79", "CWE-80"}))
	assert.Empty(t, normalizeCWE(nil))
	assert.Empty(t, normalizeCWE(""))
	assert.Empty(t, normalizeCWE(42))
}
