package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
)

var (
	cfgFile  string
	target   string
	provider string
	topK     int
	skipLLM  bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "secscan",
	Short: "Automated secure code review",
	Long: `secscan orchestrates external static-analysis tools (semgrep, bandit)
against a codebase, merges and deduplicates their findings, optionally asks an
LLM backend to triage and explain each finding, and emits JSON and interactive
HTML reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&target, "target", "./sample_app", "Directory to scan")
	rootCmd.Flags().StringVar(&provider, "provider", "", "LLM provider (openai, anthropic, ollama, lmstudio)")
	rootCmd.Flags().IntVar(&topK, "top-k", 0, "How many findings to enrich with the LLM (-1 for all)")
	rootCmd.Flags().BoolVar(&skipLLM, "skip-llm", false, "Skip LLM triage entirely")

	rootCmd.AddCommand(versionCmd)
}

// loadRunConfig builds the effective configuration for this run: config file
// and environment first, then explicit flags on top.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("provider") {
		cfg.Provider = strings.ToLower(provider)
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = topK
	}
	if skipLLM {
		cfg.SkipLLM = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger builds the run logger. Warnings and above by default; everything
// with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
