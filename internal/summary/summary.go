// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary writes per-record summaries and the issue editorial
// through the Claude API.
package summary

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const (
	defaultMaxTokensSummary   = 150
	defaultMaxTokensEditorial = 300
	defaultMaxRetries         = 3
)

// AIBackend abstracts the Generative AI API so tests can supply a mock.
// Per the Strategy pattern.
type AIBackend interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

const summarySystem = `You are writing for a monthly tokenization research newsletter.
Write a single flowing paragraph summarizing the paper: what it does, key findings, and why it matters.
No bold text, no labels, no bullet points.
Just smooth, readable, technically precise prose. Keep it under 80 words.`

const editorialSystem = `You are the editor of "Tokenization Digest," a monthly newsletter about LLM tokenization research.
Write a brief editorial (100-200 words) that:
1. Opens with a compelling observation about this month's collection
2. Identifies themes or trends across the papers
3. Highlights 1-2 papers that are particularly noteworthy and why
4. Ends with a forward-looking thought about where tokenization research is heading

Tone: knowledgeable, accessible, slightly opinionated. You have genuine expertise.
Do NOT use bullet points. Write in flowing paragraphs.
Do NOT be generic - make specific connections between papers.`

// BatchSummarize attaches a summary to every record. A failed record gets
// a fallback line pointing at the source URL; one bad API call never sinks
// the batch.
func BatchSummarize(ctx context.Context, backend AIBackend, records []types.Record, cfg types.SummaryConfig, w io.Writer) []types.Record {
	maxTokens := cfg.MaxTokensSummary
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokensSummary
	}

	for i := range records {
		text, err := SummarizeRecord(ctx, backend, records[i], maxTokens, cfg.MaxRetries)
		if err != nil {
			fmt.Fprintf(w, "warning: summarizing %q: %v\n", records[i].Title, err)
			records[i].Summary = fmt.Sprintf("*Summary unavailable.* Read the full paper: %s", records[i].URL)
			continue
		}
		records[i].Summary = strings.TrimSpace(text)
	}
	return records
}

// SummarizeRecord generates the summary paragraph for one record.
func SummarizeRecord(ctx context.Context, backend AIBackend, rec types.Record, maxTokens, maxRetries int) (string, error) {
	authors := "Unknown"
	if len(rec.Authors) > 0 {
		authors = strings.Join(rec.Authors, ", ")
	}
	abstract := rec.Abstract
	if abstract == "" {
		abstract = "No abstract available."
	}

	prompt := fmt.Sprintf(`Summarize this paper for the newsletter:

Title: %s
Authors: %s
Abstract: %s

Write a brief, informative summary with commentary.`, rec.Title, authors, abstract)

	return callWithRetry(ctx, backend, summarySystem, prompt, maxTokens, maxRetries)
}

// GenerateEditorial writes the issue editorial connecting the selected
// records into a narrative.
func GenerateEditorial(ctx context.Context, backend AIBackend, records []types.Record, cfg types.SummaryConfig) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no records to editorialize")
	}

	maxTokens := cfg.MaxTokensEditorial
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokensEditorial
	}

	var lines []string
	for i, rec := range records {
		authors := rec.Authors
		if len(authors) > 3 {
			authors = authors[:3]
		}
		names := "Unknown"
		if len(authors) > 0 {
			names = strings.Join(authors, ", ")
		}
		abstract := rec.Abstract
		if len(abstract) > 300 {
			abstract = abstract[:300]
		}
		lines = append(lines, fmt.Sprintf("%d. %q by %s\n   Abstract: %s...", i+1, rec.Title, names, abstract))
	}

	prompt := fmt.Sprintf(`Write the editorial for this month's Tokenization Digest.

This month's papers:
%s

Write the editorial.`, strings.Join(lines, "\n"))

	text, err := callWithRetry(ctx, backend, editorialSystem, prompt, maxTokens, cfg.MaxRetries)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// callWithRetry calls the AI backend with exponential backoff.
func callWithRetry(ctx context.Context, backend AIBackend, system, prompt string, maxTokens, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Complete(ctx, system, prompt, maxTokens)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
