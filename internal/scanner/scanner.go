package scanner

import (
	"context"
	"log/slog"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
)

// Tool is one external static-analysis tool. Implementations must treat every
// failure mode as zero findings; Scan never returns an error.
type Tool interface {
	Name() string
	Scan(ctx context.Context, target string) []finding.Finding
}

// Runner executes a fixed set of tools in order and builds the canonical,
// deduplicated finding collection from their concatenated results.
type Runner struct {
	tools  []Tool
	logger *slog.Logger
}

// NewRunner creates a Runner over the default tool set (semgrep, then bandit)
// using the configured subprocess timeout.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		tools: []Tool{
			NewSemgrep(cfg.ScannerTimeout, logger),
			NewBandit(cfg.ScannerTimeout, logger),
		},
		logger: logger,
	}
}

// NewRunnerWithTools creates a Runner over an explicit tool set.
func NewRunnerWithTools(logger *slog.Logger, tools ...Tool) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{tools: tools, logger: logger}
}

// ScanAll runs every tool sequentially against the target and returns the
// deduplicated finding collection. Duplicates are resolved first-wins in
// tool-concatenation order.
func (r *Runner) ScanAll(ctx context.Context, target string) []finding.Finding {
	var all []finding.Finding
	for _, tool := range r.tools {
		r.logger.Info("running scanner", "tool", tool.Name(), "target", target)
		results := tool.Scan(ctx, target)
		r.logger.Info("scanner finished", "tool", tool.Name(), "findings", len(results))
		all = append(all, results...)
	}
	return finding.Dedupe(all)
}
