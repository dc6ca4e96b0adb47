package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

func newTestLMStudio(t *testing.T, handler http.HandlerFunc) *LMStudioProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewLMStudioProvider(&config.Config{BaseURL: srv.URL, Model: "test-model"})
	require.NoError(t, err)
	return p
}

func TestLMStudioComplete_FirstAttemptOmitsModel(t *testing.T) {
	var gotModels []string
	p := newTestLMStudio(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		model, _ := req["model"].(string)
		gotModels = append(gotModels, model)
		w.Write([]byte(`{"choices": [{"message": {"content": "hello"}}]}`))
	})

	resp, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	require.Len(t, gotModels, 1)
	assert.Empty(t, gotModels[0])
}

func TestLMStudioComplete_RetriesWithModelOnRejection(t *testing.T) {
	var gotModels []string
	p := newTestLMStudio(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		model, _ := req["model"].(string)
		gotModels = append(gotModels, model)
		if model == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "model is required"}`))
			return
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "retried"}}]}`))
	})

	resp, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "retried", resp.Content)
	require.Len(t, gotModels, 2)
	assert.Empty(t, gotModels[0])
	assert.Equal(t, "test-model", gotModels[1])
}

func TestLMStudioComplete_BothAttemptsRejected(t *testing.T) {
	p := newTestLMStudio(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "no model loaded"}`))
	})

	_, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestLMStudioComplete_ResponseEnvelopeVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"openai choices message", `{"choices": [{"message": {"content": "a"}}]}`, "a"},
		{"choices text", `{"choices": [{"text": "b"}]}`, "b"},
		{"bare response", `{"response": "c"}`, "c"},
		{"bare content", `{"content": "d"}`, "d"},
		{"bare text", `{"text": "e"}`, "e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestLMStudio(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			resp, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Content)
		})
	}
}

func TestLMStudioComplete_InvalidJSONResponse(t *testing.T) {
	p := newTestLMStudio(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
	assert.Error(t, err)
}

func TestLMStudioComplete_NoContentField(t *testing.T) {
	p := newTestLMStudio(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"usage": {"total_tokens": 12}}`))
	})

	_, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognizable content")
}

func TestLMStudioComplete_ServerUnreachable(t *testing.T) {
	p, err := NewLMStudioProvider(&config.Config{BaseURL: "http://127.0.0.1:1/v1/chat/completions"})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
	assert.Error(t, err)
}

func TestLMStudioComplete_SendsSystemMessage(t *testing.T) {
	var roles []string
	p := newTestLMStudio(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		for _, m := range req.Messages {
			roles = append(roles, m.Role)
		}
		w.Write([]byte(`{"content": "ok"}`))
	})

	_, err := p.Complete(context.Background(), llm.CompletionRequest{System: "sys", Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"system", "user"}, roles)
}
