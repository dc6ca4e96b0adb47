package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for pipeline errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Target error codes
const (
	TARGET_NOT_FOUND ErrorCode = "TARGET_NOT_FOUND"
	TARGET_INVALID   ErrorCode = "TARGET_INVALID"
)

// Scanner error codes
const (
	SCANNER_EXEC_FAILED    ErrorCode = "SCANNER_EXEC_FAILED"
	SCANNER_TIMEOUT        ErrorCode = "SCANNER_TIMEOUT"
	SCANNER_INVALID_OUTPUT ErrorCode = "SCANNER_INVALID_OUTPUT"
)

// Report error codes
const (
	REPORT_WRITE_FAILED    ErrorCode = "REPORT_WRITE_FAILED"
	REPORT_RENDER_FAILED   ErrorCode = "REPORT_RENDER_FAILED"
	TRANSCRIPT_OPEN_FAILED ErrorCode = "TRANSCRIPT_OPEN_FAILED"
)

// PipelineError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints for error
// handling logic.
type PipelineError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a PipelineError with the same Code.
func (e *PipelineError) Is(target error) bool {
	var pipelineErr *PipelineError
	if errors.As(target, &pipelineErr) {
		return e.Code == pipelineErr.Code
	}
	return false
}

// NewError creates a new non-retryable PipelineError with the given code and message.
func NewError(code ErrorCode, message string) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a new PipelineError wrapping an underlying cause.
func WrapError(code ErrorCode, message string, cause error) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewRetryableError creates a PipelineError marked as retryable, indicating
// the operation may succeed if attempted again.
func NewRetryableError(code ErrorCode, message string) *PipelineError {
	return &PipelineError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// CodeOf extracts the error code from an error chain.
// Returns an empty code if no PipelineError is found.
func CodeOf(err error) ErrorCode {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Code
	}
	return ""
}
