package providers

import (
	"context"

	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

// ErrorProvider is a Provider whose every call fails with a fixed error. It
// stands in when a real provider cannot be constructed (missing API key,
// unknown name from a config file edited after validation) so the triage
// batch still runs to completion and every selected finding carries the
// descriptive error payload instead of the scan crashing.
type ErrorProvider struct {
	name string
	err  error
}

// NewErrorProvider wraps a construction failure as a provider.
func NewErrorProvider(name string, err error) *ErrorProvider {
	return &ErrorProvider{name: name, err: err}
}

// Name returns the name of the provider that failed to initialize.
func (p *ErrorProvider) Name() string {
	return p.name
}

// Complete always fails with the construction error.
func (p *ErrorProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return nil, p.err
}
