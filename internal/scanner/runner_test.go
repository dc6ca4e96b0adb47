package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunCommand_MissingBinary(t *testing.T) {
	result := RunCommand(context.Background(), 5*time.Second, "definitely-not-a-real-binary-xyz")

	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ExitCode)
	assert.NotEmpty(t, result.Stderr)
}

func TestRunCommand_Timeout(t *testing.T) {
	result := RunCommand(context.Background(), 50*time.Millisecond, "sleep", "5")

	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ExitCode)
	assert.Contains(t, result.Stderr, "timed out")
}

func TestRunCommand_NonZeroExitKeepsStdout(t *testing.T) {
	result := RunCommand(context.Background(), 5*time.Second,
		"sh", "-c", `echo '{"results": []}'; exit 1`)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stdout, `"results"`)
}

func TestRunCommand_Success(t *testing.T) {
	result := RunCommand(context.Background(), 5*time.Second, "sh", "-c", "echo hello")

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "hello")
}
