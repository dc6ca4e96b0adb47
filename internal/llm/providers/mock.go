package providers

import (
	"context"
	"sync"

	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// MockCall records one request made to the mock provider.
type MockCall struct {
	Request llm.CompletionRequest
}

// MockProvider implements Provider for testing. It replays a scripted list of
// responses and records every call. When Err is set, every call fails with it.
type MockProvider struct {
	mu            sync.Mutex
	responses     []string
	responseIndex int
	calls         []MockCall

	// Err, when non-nil, is returned by every Complete call.
	Err error
}

// NewMockProvider creates a mock provider replaying the given responses in
// order. When the script runs out, the last response repeats.
func NewMockProvider(responses []string) *MockProvider {
	return &MockProvider{
		responses: responses,
		calls:     make([]MockCall, 0),
	}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Complete replays the next scripted response.
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, MockCall{Request: req})

	if p.Err != nil {
		return nil, p.Err
	}

	if len(p.responses) == 0 {
		return nil, types.NewError(llm.ErrCompletionFailed, "mock provider has no scripted responses")
	}

	response := p.responses[p.responseIndex]
	if p.responseIndex < len(p.responses)-1 {
		p.responseIndex++
	}

	return &llm.CompletionResponse{Content: response}, nil
}

// Calls returns a copy of the recorded calls.
func (p *MockProvider) Calls() []MockCall {
	p.mu.Lock()
	defer p.mu.Unlock()

	calls := make([]MockCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}
