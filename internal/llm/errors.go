package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// LLM error codes
const (
	ErrProviderUnknown      types.ErrorCode = "LLM_PROVIDER_UNKNOWN"
	ErrProviderInitFailed   types.ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"
	ErrCompletionFailed     types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrInvalidResponse      types.ErrorCode = "LLM_INVALID_RESPONSE"
	ErrNetworkFailed        types.ErrorCode = "LLM_NETWORK_FAILED"
	ErrTimeoutExceeded      types.ErrorCode = "LLM_TIMEOUT_EXCEEDED"
)

// NewUnknownProviderError reports a provider name no factory case handles.
func NewUnknownProviderError(name string) error {
	return types.NewError(
		ErrProviderUnknown,
		fmt.Sprintf("unknown LLM provider %q, use: openai, anthropic, ollama, or lmstudio", name),
	)
}

// NewAuthError reports a missing or rejected API key for a provider. The
// message names the environment variable so the failure is self-explanatory
// in the per-finding error payload.
func NewAuthError(provider string) error {
	envVar := strings.ToUpper(provider) + "_API_KEY"
	return types.NewError(
		ErrProviderUnauthorized,
		fmt.Sprintf("%s API key not set, export %s to enable this provider", provider, envVar),
	)
}

// TranslateError maps a raw provider error to a typed pipeline error,
// classifying timeouts and network failures as retryable.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return types.WrapError(
			ErrTimeoutExceeded,
			fmt.Sprintf("%s request timed out", provider),
			err,
		)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		e := types.WrapError(
			ErrNetworkFailed,
			fmt.Sprintf("cannot reach %s backend", provider),
			err,
		)
		e.Retryable = true
		return e
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "invalid api key"):
		return types.WrapError(
			ErrProviderUnauthorized,
			fmt.Sprintf("%s rejected the API key", provider),
			err,
		)
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		e := types.WrapError(
			ErrProviderRateLimited,
			fmt.Sprintf("%s rate limited the request", provider),
			err,
		)
		e.Retryable = true
		return e
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host"):
		e := types.WrapError(
			ErrNetworkFailed,
			fmt.Sprintf("cannot reach %s backend", provider),
			err,
		)
		e.Retryable = true
		return e
	}

	return types.WrapError(
		ErrCompletionFailed,
		fmt.Sprintf("%s completion failed", provider),
		err,
	)
}
