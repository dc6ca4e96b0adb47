package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/NoelNavall/secure-code-review-automation/internal/config"
	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm/providers"
	"github.com/NoelNavall/secure-code-review-automation/internal/report"
	"github.com/NoelNavall/secure-code-review-automation/internal/scanner"
	"github.com/NoelNavall/secure-code-review-automation/internal/triage"
	"github.com/NoelNavall/secure-code-review-automation/internal/types"
)

// runScan is the whole pipeline: scanners, normalization, classification,
// optional LLM triage, ranking, and report emission.
func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger()
	ctx := cmd.Context()

	// Only an invalid target is a hard stop; everything after this point
	// degrades gracefully.
	if _, err := os.Stat(target); err != nil {
		return types.WrapError(
			types.TARGET_NOT_FOUND,
			fmt.Sprintf("target not found: %s, provide a valid file or directory path", target),
			err,
		)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("SECURE CODE REVIEW AUTOMATION")
	fmt.Println(strings.Repeat("=", 60))

	runner := scanner.NewRunner(cfg, logger)
	findings := runner.ScanAll(ctx, target)
	fmt.Printf("\nTotal unique findings: %d\n", len(findings))

	if len(findings) == 0 {
		fmt.Println("\nNo security issues found!")
		return nil
	}

	classifier := finding.NewClassifier(cfg.CriticalKeywords, cfg.HighKeywords)
	classifier.Classify(findings)

	now := time.Now()
	scanFolder := filepath.Join(cfg.ReportsDir, fmt.Sprintf("%s_%s", now.Format("2006-01-02_15-04-05"), targetName(target)))
	if err := os.MkdirAll(scanFolder, 0o755); err != nil {
		return types.WrapError(types.REPORT_WRITE_FAILED, "failed to create scan folder", err)
	}

	if cfg.SkipLLM {
		fmt.Println("\nSkipping LLM analysis (--skip-llm flag)")
	} else {
		fmt.Printf("\nAnalyzing %d findings with LLM (%s)...\n", len(findings), cfg.Provider)
		findings = runTriage(cmd, cfg, classifier, scanFolder, findings)
	}

	finding.SortBySeverity(findings)

	jsonPath := filepath.Join(scanFolder, "findings.json")
	if err := report.WriteJSON(jsonPath, report.NewDocument(now, findings)); err != nil {
		return err
	}
	fmt.Printf("\nJSON report saved: %s\n", jsonPath)

	htmlPath := filepath.Join(scanFolder, "report.html")
	if err := report.WriteHTML(htmlPath, now, findings, report.HTMLOptions{
		ContextLines: cfg.ContextLines,
		ItemsPerPage: cfg.ItemsPerPage,
	}); err != nil {
		return err
	}
	fmt.Printf("HTML report saved: %s\n", htmlPath)

	printSummary(findings, scanFolder)
	return nil
}

// runTriage wires the provider and engine and enriches the findings. A
// provider that cannot be constructed degrades to per-finding error payloads
// rather than aborting the scan.
func runTriage(cmd *cobra.Command, cfg *config.Config, classifier *finding.Classifier, scanFolder string, findings []finding.Finding) []finding.Finding {
	var backend llm.Provider
	backend, err := providers.NewProvider(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		backend = providers.NewErrorProvider(cfg.Provider, err)
	}

	transcript := triage.NewTranscript(filepath.Join(scanFolder, "llm_prompts.txt"))
	engine := triage.NewEngine(backend, classifier, transcript, cfg.TopK, cfg.LLMTimeout, newLogger())

	return engine.Triage(cmd.Context(), findings)
}

// targetName derives the report folder suffix from the target path.
func targetName(path string) string {
	name := filepath.Base(strings.TrimRight(path, "/\\"))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "root"
	}
	return name
}

// printSummary prints the colored per-severity counts and the output folder.
func printSummary(findings []finding.Finding, scanFolder string) {
	summary := finding.Summarize(findings)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SCAN COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Summary:")
	color.New(color.FgRed, color.Bold).Printf("   CRITICAL: %d\n", summary.Critical)
	color.New(color.FgYellow, color.Bold).Printf("   HIGH:     %d\n", summary.High)
	color.New(color.FgYellow).Printf("   MEDIUM:   %d\n", summary.Medium)
	color.New(color.FgBlue).Printf("   LOW:      %d\n", summary.Low)
	fmt.Printf("\nScan saved to: %s%c\n", scanFolder, filepath.Separator)
	fmt.Printf("   Open: %s\n", filepath.Join(scanFolder, "report.html"))
}
