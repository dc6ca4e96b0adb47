package triage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// ruleLine separates transcript blocks.
var ruleLine = strings.Repeat("=", 60)

// Transcript is the append-only audit log of every triage prompt and
// response. Each write opens, appends, and closes the file, so the transcript
// survives a crash mid-batch and needs no writer discipline.
type Transcript struct {
	path string
}

// NewTranscript creates a transcript writer for the given path. The file is
// created on first append.
func NewTranscript(path string) *Transcript {
	return &Transcript{path: path}
}

// Path returns the transcript file path.
func (t *Transcript) Path() string {
	return t.path
}

// AppendPrompt records the prompt sent for a finding, with a timestamp header.
func (t *Transcript) AppendPrompt(title, prompt string) error {
	block := fmt.Sprintf("\n%s\nTimestamp: %s\nFinding: %s\nPrompt:\n%s\n",
		ruleLine, time.Now().Format(time.RFC3339), title, prompt)
	return t.append(block)
}

// AppendResponse records the raw response (or error text) for the preceding
// prompt. This is written unconditionally, including on call failure, for
// traceability.
func (t *Transcript) AppendResponse(response string) error {
	return t.append(fmt.Sprintf("Response:\n%s\n", response))
}

func (t *Transcript) append(block string) error {
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return types.WrapError(types.TRANSCRIPT_OPEN_FAILED, "failed to open transcript for append", err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return types.WrapError(types.TRANSCRIPT_OPEN_FAILED, "failed to append to transcript", err)
	}
	return nil
}
