package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// defaultLMStudioURL is the chat-completions endpoint of LM Studio's local
// OpenAI-compatible server.
const defaultLMStudioURL = "http://localhost:1234/v1/chat/completions"

// LMStudioProvider implements Provider for a local LM Studio server. LM
// Studio speaks the OpenAI chat-completion shape but, depending on version
// and loaded model, may reject a request that names an explicit model. The
// first attempt therefore omits the model field, and a non-2xx answer is
// retried with a generic model name. That handshake is why this provider is a
// plain HTTP client rather than an OpenAI-compatible langchaingo client.
type LMStudioProvider struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewLMStudioProvider creates an LM Studio provider. No API key is required.
func NewLMStudioProvider(cfg *config.Config) (*LMStudioProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultLMStudioURL
	}

	model := cfg.Model
	if model == "" {
		model = "local-model"
	}

	return &LMStudioProvider{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		model:      model,
	}, nil
}

// Name returns the provider name
func (p *LMStudioProvider) Name() string {
	return "lmstudio"
}

// chatRequest is the OpenAI-compatible request envelope. Model is omitted on
// the first attempt.
type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse covers the response shapes local servers actually emit: the
// OpenAI choices array plus the looser single-field variants some builds
// return.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
	Response string `json:"response"`
	Content  string `json:"content"`
	Text     string `json:"text"`
}

// Complete sends a chat completion to the local server, retrying once with an
// explicit model name if the first, model-less request is rejected.
func (p *LMStudioProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	req = req.WithDefaults()

	body := chatRequest{
		Messages:    toChatMessages(req),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	status, payload, err := p.post(ctx, body)
	if err != nil {
		return nil, llm.TranslateError("lmstudio", err)
	}

	if status < 200 || status >= 300 {
		body.Model = p.model
		status, payload, err = p.post(ctx, body)
		if err != nil {
			return nil, llm.TranslateError("lmstudio", err)
		}
		if status < 200 || status >= 300 {
			return nil, types.NewError(
				llm.ErrCompletionFailed,
				fmt.Sprintf("lmstudio returned HTTP %d: %s", status, truncate(string(payload), 200)),
			)
		}
	}

	content, err := extractContent(payload)
	if err != nil {
		return nil, err
	}

	return &llm.CompletionResponse{Content: content}, nil
}

// post sends one request and returns the HTTP status and raw response body.
func (p *LMStudioProvider) post(ctx context.Context, body chatRequest) (int, []byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, payload, nil
}

// extractContent pulls the completion text out of whichever envelope the
// server used.
func extractContent(payload []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", types.WrapError(
			llm.ErrInvalidResponse,
			fmt.Sprintf("lmstudio returned invalid JSON: %s", truncate(string(payload), 200)),
			err,
		)
	}

	if len(resp.Choices) > 0 {
		if c := resp.Choices[0].Message.Content; c != "" {
			return c, nil
		}
		if resp.Choices[0].Text != "" {
			return resp.Choices[0].Text, nil
		}
	}
	if resp.Response != "" {
		return resp.Response, nil
	}
	if resp.Content != "" {
		return resp.Content, nil
	}
	if resp.Text != "" {
		return resp.Text, nil
	}

	return "", types.NewError(
		llm.ErrInvalidResponse,
		fmt.Sprintf("lmstudio response has no recognizable content field: %s", truncate(string(payload), 200)),
	)
}

func toChatMessages(req llm.CompletionRequest) []chatMessage {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})
	return messages
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
