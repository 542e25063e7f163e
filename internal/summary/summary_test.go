package summary

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	reply    string
	err      error
	failures int // fail this many calls before succeeding
	calls    int
	prompts  []string
}

func (m *mockBackend) Complete(_ context.Context, _, prompt string, _ int) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if m.calls <= m.failures {
		return "", fmt.Errorf("transient error")
	}
	return m.reply, nil
}

func testSummaryCfg() types.SummaryConfig {
	return types.SummaryConfig{
		AIConfig: types.AIConfig{
			Model:      "test-model",
			MaxRetries: 2,
		},
		MaxTokensSummary:   150,
		MaxTokensEditorial: 300,
	}
}

func testRecords() []types.Record {
	return []types.Record{
		{
			Title:    "Tokenization Is More Than Compression",
			Authors:  []string{"Ada Lovelace", "Alan Turing"},
			Abstract: "We study tokenization effects across languages.",
			URL:      "https://arxiv.org/abs/2501.01234",
			Source:   types.SourceArxiv,
		},
		{
			Title:  "Notes on Tokenizer Internals",
			URL:    "https://example.org/notes",
			Source: types.SourceHuggingFaceBlog,
		},
	}
}

// --- BatchSummarize ---

func TestBatchSummarize(t *testing.T) {
	backend := &mockBackend{reply: "A tight summary of the work."}
	var buf bytes.Buffer

	records := BatchSummarize(context.Background(), backend, testRecords(), testSummaryCfg(), &buf)
	for _, rec := range records {
		if rec.Summary != "A tight summary of the work." {
			t.Errorf("Summary for %q = %q", rec.Title, rec.Summary)
		}
	}
	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2", backend.calls)
	}
	// The record with no authors or abstract still gets a well-formed prompt.
	if !strings.Contains(backend.prompts[1], "Authors: Unknown") {
		t.Errorf("prompt should default missing authors, got:\n%s", backend.prompts[1])
	}
	if !strings.Contains(backend.prompts[1], "No abstract available.") {
		t.Errorf("prompt should default missing abstract, got:\n%s", backend.prompts[1])
	}
}

func TestBatchSummarizeFallback(t *testing.T) {
	old := backoffBase
	backoffBase = time.Millisecond
	defer func() { backoffBase = old }()

	backend := &mockBackend{err: fmt.Errorf("overloaded")}
	var buf bytes.Buffer

	records := BatchSummarize(context.Background(), backend, testRecords(), testSummaryCfg(), &buf)
	if !strings.Contains(records[0].Summary, "Summary unavailable") {
		t.Errorf("failed record should carry fallback, got %q", records[0].Summary)
	}
	if !strings.Contains(records[0].Summary, records[0].URL) {
		t.Errorf("fallback should link the source URL, got %q", records[0].Summary)
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("output should warn about the failed summary")
	}
}

func TestSummarizeRecordRetries(t *testing.T) {
	old := backoffBase
	backoffBase = time.Millisecond
	defer func() { backoffBase = old }()

	backend := &mockBackend{reply: "Recovered summary.", failures: 2}
	got, err := SummarizeRecord(context.Background(), backend, testRecords()[0], 150, 3)
	if err != nil {
		t.Fatalf("SummarizeRecord: %v", err)
	}
	if got != "Recovered summary." {
		t.Errorf("summary = %q", got)
	}
	if backend.calls != 3 {
		t.Errorf("backend calls = %d, want 3 (two failures then success)", backend.calls)
	}
}

// --- GenerateEditorial ---

func TestGenerateEditorial(t *testing.T) {
	backend := &mockBackend{reply: "  This month the field converged on byte-level methods.  "}

	got, err := GenerateEditorial(context.Background(), backend, testRecords(), testSummaryCfg())
	if err != nil {
		t.Fatalf("GenerateEditorial: %v", err)
	}
	if got != "This month the field converged on byte-level methods." {
		t.Errorf("editorial = %q, should be trimmed", got)
	}
	prompt := backend.prompts[0]
	if !strings.Contains(prompt, `1. "Tokenization Is More Than Compression"`) {
		t.Errorf("editorial prompt should enumerate papers, got:\n%s", prompt)
	}
}

func TestGenerateEditorialEmpty(t *testing.T) {
	if _, err := GenerateEditorial(context.Background(), &mockBackend{}, nil, testSummaryCfg()); err == nil {
		t.Error("expected error for empty record list")
	}
}

// --- ClaudeBackend ---

func TestClaudeBackendComplete(t *testing.T) {
	var gotKey, gotVersion string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"content": [{"type": "text", "text": "A summary."}]}`)
	}))
	defer ts.Close()

	old := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = old }()

	b := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	got, err := b.Complete(context.Background(), "system", "prompt", 150)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "A summary." {
		t.Errorf("Complete = %q", got)
	}
	if gotKey != "test-key" || gotVersion != "2023-06-01" {
		t.Errorf("headers = %q / %q", gotKey, gotVersion)
	}
}

func TestClaudeBackendHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	old := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = old }()

	b := &ClaudeBackend{APIKey: "k", Model: "m", Client: ts.Client()}
	if _, err := b.Complete(context.Background(), "", "prompt", 150); err == nil {
		t.Error("expected error on HTTP 503")
	}
}

func TestClaudeBackendEmptyContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content": []}`)
	}))
	defer ts.Close()

	old := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = old }()

	b := &ClaudeBackend{APIKey: "k", Model: "m", Client: ts.Client()}
	if _, err := b.Complete(context.Background(), "", "prompt", 150); err == nil {
		t.Error("expected error for empty content")
	}
}
