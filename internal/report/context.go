package report

import (
	"fmt"
	"os"
	"strings"
)

// CodeContext re-reads the scanned file and renders contextLines lines of
// context on each side of the finding line, with line numbers and a marker on
// the vulnerable line. When the file cannot be read (absolute paths from
// another machine, deleted files), the tool-reported snippet is the caller's
// fallback.
func CodeContext(path string, line, contextLines int) (string, error) {
	if line <= 0 {
		return "", fmt.Errorf("no line information for %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read file context: %w", err)
	}

	lines := strings.Split(string(data), "\n")

	start := line - contextLines - 1
	if start < 0 {
		start = 0
	}
	end := line + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		content := strings.TrimRight(lines[i], " \t\r")

		if lineNum == line {
			fmt.Fprintf(&b, "> %4d  %s  <-- VULNERABLE LINE\n", lineNum, content)
		} else {
			fmt.Fprintf(&b, "  %4d  %s\n", lineNum, content)
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
