package triage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_AppendBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm_prompts.txt")
	tr := NewTranscript(path)

	require.NoError(t, tr.AppendPrompt("sql-injection", "Analyze this..."))
	require.NoError(t, tr.AppendResponse(`{"priority": "HIGH"}`))
	require.NoError(t, tr.AppendPrompt("xss", "Analyze that..."))
	require.NoError(t, tr.AppendResponse("ERROR: connection refused"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Equal(t, 2, strings.Count(content, ruleLine))
	assert.Contains(t, content, "Finding: sql-injection")
	assert.Contains(t, content, "Prompt:\nAnalyze this...")
	assert.Contains(t, content, "Response:\n{\"priority\": \"HIGH\"}")
	assert.Contains(t, content, "Finding: xss")
	assert.Contains(t, content, "Response:\nERROR: connection refused")
	assert.Contains(t, content, "Timestamp: ")

	// Append-only: blocks appear in write order.
	assert.Less(t, strings.Index(content, "sql-injection"), strings.Index(content, "xss"))
}

func TestTranscript_CreatedOnFirstAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm_prompts.txt")
	tr := NewTranscript(path)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, tr.AppendPrompt("t", "p"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestTranscript_UnwritableDirectory(t *testing.T) {
	tr := NewTranscript(filepath.Join(t.TempDir(), "missing", "llm_prompts.txt"))
	assert.Error(t, tr.AppendPrompt("t", "p"))
}
