package collect

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// --- mock collector ---

type mockCollector struct {
	name    string
	records []types.Record
	err     error
}

func (m *mockCollector) Name() string { return m.name }

func (m *mockCollector) Collect(_ context.Context, _ []string, _ types.CollectConfig) ([]types.Record, error) {
	return m.records, m.err
}

func testCfg() types.CollectConfig {
	return types.CollectConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		LookbackDays: 35,
		MaxPerSource: 50,
	}
}

var testKeywords = []string{"tokenization", "tokenizer", "BPE"}

// --- CollectAll ---

func TestCollectAllNoCollectors(t *testing.T) {
	var buf bytes.Buffer
	_, err := CollectAll(context.Background(), nil, testKeywords, testCfg(), &buf)
	if err == nil || !strings.Contains(err.Error(), "no collectors") {
		t.Errorf("expected no collectors error, got: %v", err)
	}
}

func TestCollectAllCombines(t *testing.T) {
	c1 := &mockCollector{
		name: "c1",
		records: []types.Record{
			{Title: "Paper A", Source: types.SourceArxiv},
			{Title: "Paper B", Source: types.SourceArxiv},
		},
	}
	c2 := &mockCollector{
		name: "c2",
		records: []types.Record{
			{Title: "Post C", Source: types.SourceLessWrong},
		},
	}

	var buf bytes.Buffer
	out, err := CollectAll(context.Background(), []Collector{c1, c2}, testKeywords, testCfg(), &buf)
	if err != nil {
		t.Fatalf("CollectAll: %v", err)
	}
	if len(out.Records) != 3 {
		t.Errorf("len(Records) = %d, want 3", len(out.Records))
	}
	if len(out.SourceErrors) != 0 {
		t.Errorf("SourceErrors = %v, want none", out.SourceErrors)
	}
}

func TestCollectAllContinuesAfterSourceFailure(t *testing.T) {
	failing := &mockCollector{name: "failing", err: fmt.Errorf("network error")}
	working := &mockCollector{
		name: "working",
		records: []types.Record{
			{Title: "Paper A", Source: types.SourceArxiv},
		},
	}

	var buf bytes.Buffer
	out, err := CollectAll(context.Background(), []Collector{failing, working}, testKeywords, testCfg(), &buf)
	if err != nil {
		t.Fatalf("CollectAll should not fail entirely: %v", err)
	}
	if len(out.Records) != 1 {
		t.Errorf("len(Records) = %d, want 1", len(out.Records))
	}
	if len(out.SourceErrors) != 1 {
		t.Errorf("len(SourceErrors) = %d, want 1", len(out.SourceErrors))
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("output should contain warning about failed source")
	}
}

// --- helpers ---

func TestMatchesAnyKeyword(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"direct hit", "a post about tokenization", true},
		{"case insensitive", "BPE Merges Explained", true},
		{"no hit", "a post about gardening", false},
		{"empty text", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesAnyKeyword(tt.text, testKeywords); got != tt.want {
				t.Errorf("matchesAnyKeyword(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	got := stripHTML(`<b>Tokenizer</b> notes <a href="x">here</a>`)
	if got != "Tokenizer notes here" {
		t.Errorf("stripHTML = %q", got)
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 500); got != "short" {
		t.Errorf("clip should not touch short strings, got %q", got)
	}
	long := strings.Repeat("a", 600)
	if got := clip(long, 500); len(got) != 500 {
		t.Errorf("len(clip) = %d, want 500", len(got))
	}
}
