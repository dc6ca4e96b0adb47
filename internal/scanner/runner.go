package scanner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// CommandResult captures the outcome of one external tool invocation. Tool
// failures never abort the scan: a crash, missing binary, or timeout produces
// a result with Success=false and the error text in Stderr, so downstream
// stages proceed with zero findings from that tool.
type CommandResult struct {
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunCommand executes a tool as a subprocess with a bounded wall-clock
// timeout, capturing stdout, stderr, and the exit code. It never returns an
// error; every failure mode is folded into the CommandResult.
func RunCommand(ctx context.Context, timeout time.Duration, name string, args ...string) CommandResult {
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if execCtx.Err() == context.DeadlineExceeded {
		return CommandResult{
			Stderr:   "execution timed out after " + timeout.String(),
			ExitCode: -1,
		}
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// Tool ran but exited non-zero; stdout may still carry a
			// usable JSON document (semgrep and bandit exit non-zero
			// when they find issues).
			return CommandResult{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
		}
		// Spawn failure (binary missing, permission denied, ...)
		return CommandResult{
			Stderr:   runErr.Error(),
			ExitCode: -1,
		}
	}

	return CommandResult{
		Success:  true,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
}
