package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_CodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "json tagged block",
			response: "Here is my analysis:\n```json\n{\"priority\": \"HIGH\"}\n```\nLet me know if you need more.",
			want:     `{"priority": "HIGH"}`,
		},
		{
			name:     "untagged block",
			response: "```\n{\"impact\": \"data loss\"}\n```",
			want:     `{"impact": "data loss"}`,
		},
		{
			name:     "skips non-json block",
			response: "```python\nprint('hi')\n```\n```json\n{\"ok\": true}\n```",
			want:     `{"ok": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.response)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_RawObject(t *testing.T) {
	response := `Sure! The assessment is {"exploitability": 4, "impact": "high"} based on the snippet.`
	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"exploitability": 4, "impact": "high"}`, got)
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	response := `{"outer": {"inner": {"deep": 1}}, "x": 2} trailing text`
	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, `{"outer": {"inner": {"deep": 1}}, "x": 2}`, got)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	response := `{"remediation": "wrap in try { } catch", "priority": "LOW"}`
	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, got)
}

func TestExtractJSON_EscapedQuotes(t *testing.T) {
	response := `{"impact": "attacker can run \"arbitrary\" code"}`
	got, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, got)
}

func TestExtractJSON_Array(t *testing.T) {
	got, err := ExtractJSON(`[1, 2, 3]`)
	require.NoError(t, err)
	assert.Equal(t, `[1, 2, 3]`, got)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not assess this finding, sorry.")
	assert.Error(t, err)
}

func TestExtractJSON_UnterminatedObject(t *testing.T) {
	_, err := ExtractJSON(`{"priority": "HIGH"`)
	assert.Error(t, err)
}

func TestExtractJSONAs(t *testing.T) {
	type payload struct {
		Priority string `json:"priority"`
		Score    int    `json:"score"`
	}

	got, err := ExtractJSONAs[payload]("```json\n{\"priority\": \"CRITICAL\", \"score\": 5}\n```")
	require.NoError(t, err)
	assert.Equal(t, payload{Priority: "CRITICAL", Score: 5}, got)

	_, err = ExtractJSONAs[payload]("no json here")
	assert.Error(t, err)
}
