package triage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NoelNavall/secure-code-review-automation/internal/finding"
	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

// systemPrompt frames every triage call.
const systemPrompt = "You are a senior security engineer reviewing code vulnerabilities. " +
	"Provide concise, actionable remediation advice."

// promptTemplate is the fixed-shape enrichment prompt. The trailing example
// line matters: models follow the shown shape far more reliably than a prose
// description of it.
const promptTemplate = `Analyze this security vulnerability:

Title: %s
Severity: %s
File: %s:%d
Description: %s
Code snippet:
%s

Provide:
1. EXPLOITABILITY: How easily can this be exploited? (1-5 scale, 5=trivial)
2. IMPACT: What's the worst-case outcome?
3. FALSE_POSITIVE: Likelihood this is a false alarm? (LOW/MEDIUM/HIGH)
4. REMEDIATION: Specific code fix (max 3 lines)
5. PRIORITY: CRITICAL/HIGH/MEDIUM/LOW

Format as JSON:
{"exploitability": 4, "impact": "...", "false_positive": "LOW", "remediation": "...", "priority": "HIGH"}`

// maxSnippetLen bounds how much of the code snippet is embedded in a prompt.
const maxSnippetLen = 500

// Engine enriches the most severe findings through the configured LLM
// backend. Everything the engine needs (transcript destination, top-K bound,
// per-call timeout) is an explicit parameter; there is no shared function
// state between runs.
type Engine struct {
	provider   llm.Provider
	classifier *finding.Classifier
	transcript *Transcript
	topK       int
	timeout    time.Duration
	logger     *slog.Logger
}

// NewEngine creates a triage engine. topK bounds how many findings receive
// enrichment; config.TopKAll (-1) means all. timeout bounds each individual
// LLM call.
func NewEngine(provider llm.Provider, classifier *finding.Classifier, transcript *Transcript, topK int, timeout time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		provider:   provider,
		classifier: classifier,
		transcript: transcript,
		topK:       topK,
		timeout:    timeout,
		logger:     logger,
	}
}

// Triage classifies the findings, enriches the top-K most severe through the
// LLM backend, and returns the collection in final report order.
//
// Individual call failures are per-finding and non-fatal: the batch always
// completes, a failed call leaves an error payload on its finding, and
// malformed LLM output is captured as a fallback payload, never dropped.
// Findings beyond the bound keep their classifier severity and gain no
// payload.
func (e *Engine) Triage(ctx context.Context, findings []finding.Finding) []finding.Finding {
	if len(findings) == 0 {
		return findings
	}

	critical, high, other := e.classifier.Buckets(findings)

	ordered := make([]*finding.Finding, 0, len(findings))
	ordered = append(ordered, critical...)
	ordered = append(ordered, high...)
	ordered = append(ordered, other...)

	top := ordered
	if e.topK >= 0 && e.topK < len(ordered) {
		top = ordered[:e.topK]
	}

	e.logger.Info("starting LLM triage",
		"provider", e.provider.Name(),
		"total", len(findings),
		"selected", len(top),
	)

	for i, f := range top {
		e.logger.Info("analyzing finding",
			"index", i+1,
			"count", len(top),
			"title", f.Title,
		)
		e.enrich(ctx, f)
	}

	finding.SortBySeverity(findings)
	return findings
}

// enrich runs one finding through prompt, transcript, call, parse, and
// severity override.
func (e *Engine) enrich(ctx context.Context, f *finding.Finding) {
	prompt := e.renderPrompt(f)

	if err := e.transcript.AppendPrompt(f.Title, prompt); err != nil {
		e.logger.Warn("failed to record prompt in transcript", "error", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	resp, callErr := e.provider.Complete(callCtx, llm.CompletionRequest{
		System: systemPrompt,
		Prompt: prompt,
	})
	cancel()

	if callErr != nil {
		// The transcript records the failure in place of a response so
		// the audit trail stays complete.
		if err := e.transcript.AppendResponse("ERROR: " + callErr.Error()); err != nil {
			e.logger.Warn("failed to record error in transcript", "error", err)
		}
		e.logger.Warn("LLM call failed", "title", f.Title, "error", callErr)
		f.LLMAnalysis = &finding.Enrichment{Err: callErr.Error()}
		return
	}

	if err := e.transcript.AppendResponse(resp.Content); err != nil {
		e.logger.Warn("failed to record response in transcript", "error", err)
	}

	enrichment := ParseEnrichment(resp.Content)
	f.LLMAnalysis = enrichment

	if enrichment.IsFallback() {
		e.logger.Warn("could not extract JSON from LLM response", "title", f.Title)
		return
	}

	e.applyOverride(f, enrichment)
}

// applyOverride re-derives severity from the LLM's opinion. A HIGH
// false-positive verdict demotes the finding below all real severities;
// otherwise an explicit priority wins; otherwise the keyword-classifier
// severity stands.
func (e *Engine) applyOverride(f *finding.Finding, enrichment *finding.Enrichment) {
	if enrichment.FalsePositive == "HIGH" {
		f.Severity = finding.SeverityInfo
		return
	}
	if enrichment.Priority != "" {
		f.Severity = finding.Severity(enrichment.Priority)
	}
}

// renderPrompt fills the prompt template, truncating the code snippet.
func (e *Engine) renderPrompt(f *finding.Finding) string {
	snippet := f.Code
	if len(snippet) > maxSnippetLen {
		snippet = snippet[:maxSnippetLen]
	}
	return fmt.Sprintf(promptTemplate, f.Title, f.Severity, f.File, f.Line, f.Message, snippet)
}
