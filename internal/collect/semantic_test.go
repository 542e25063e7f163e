package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const sampleSemanticJSON = `{
  "total": 2,
  "offset": 0,
  "data": [
    {
      "paperId": "p1",
      "title": "Tokenization Is More Than Compression",
      "abstract": "We study tokenization in language models.",
      "url": "https://www.semanticscholar.org/paper/p1",
      "citationCount": 12,
      "publicationDate": "2025-07-20",
      "authors": [{"authorId": "a1", "name": "Ada Lovelace"}]
    },
    {
      "paperId": "p2",
      "title": "Subword Units Revisited",
      "abstract": "",
      "url": "https://www.semanticscholar.org/paper/p2",
      "citationCount": 0,
      "publicationDate": "2025-08-01",
      "authors": []
    }
  ]
}`

func TestSemanticScholarCollector(t *testing.T) {
	var gotAPIKey string
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotAPIKey = r.Header.Get("x-api-key")
		if r.URL.Query().Get("publicationDateOrYear") == "" {
			t.Error("missing publicationDateOrYear filter")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleSemanticJSON)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	c := &SemanticScholarCollector{Client: ts.Client(), APIKey: "test-key"}
	records, err := c.Collect(context.Background(), []string{"tokenization", "BPE"}, testCfg())
	if err != nil {
		t.Fatalf("SemanticScholarCollector.Collect: %v", err)
	}

	if requests != 2 {
		t.Errorf("requests = %d, want one per keyword", requests)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("x-api-key = %q, want test-key", gotAPIKey)
	}
	// Both keyword queries return the same two papers; the union holds each once.
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	rec := records[0]
	if rec.Title != "Tokenization Is More Than Compression" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.CitationCount != 12 {
		t.Errorf("CitationCount = %d, want 12", rec.CitationCount)
	}
	if rec.Published != "2025-07-20" {
		t.Errorf("Published = %q", rec.Published)
	}
	if rec.Source != types.SourceSemanticScholar {
		t.Errorf("Source = %q, want semantic_scholar", rec.Source)
	}
	if len(rec.Authors) != 1 || rec.Authors[0] != "Ada Lovelace" {
		t.Errorf("Authors = %v", rec.Authors)
	}
}

func TestSemanticScholarCollectorEmptyKeywords(t *testing.T) {
	c := &SemanticScholarCollector{Client: http.DefaultClient}
	if _, err := c.Collect(context.Background(), nil, testCfg()); err == nil {
		t.Error("expected error for empty keyword list")
	}
}

func TestSemanticScholarCollectorHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	c := &SemanticScholarCollector{Client: ts.Client()}
	if _, err := c.Collect(context.Background(), []string{"tokenization"}, testCfg()); err == nil {
		t.Error("expected error on HTTP 502")
	}
}
