package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const sampleForumJSON = `{
  "data": {
    "posts": {
      "results": [
        {
          "_id": "abc123",
          "title": "What Tokenization Tells Us About Model Behavior",
          "pageUrl": "https://www.lesswrong.com/posts/abc123/tokenization-behavior",
          "postedAt": "2025-08-10T14:30:00.000Z",
          "baseScore": 42,
          "user": {"username": "researcher1"},
          "plaintextExcerpt": "An exploration of how tokenizers shape model outputs."
        },
        {
          "_id": "def456",
          "title": "Weekly Open Thread",
          "pageUrl": "https://www.lesswrong.com/posts/def456/open-thread",
          "postedAt": "2025-08-12T09:00:00.000Z",
          "baseScore": 5,
          "user": {"username": "moderator"},
          "plaintextExcerpt": "Discuss anything here."
        }
      ]
    }
  }
}`

func TestForumCollector(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		json.Unmarshal(body, &req)
		gotQuery = req["query"]
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleForumJSON)
	}))
	defer ts.Close()

	old := lesswrongAPIBase
	lesswrongAPIBase = ts.URL
	defer func() { lesswrongAPIBase = old }()

	c := NewLessWrongCollector(ts.Client())
	records, err := c.Collect(context.Background(), testKeywords, testCfg())
	if err != nil {
		t.Fatalf("ForumCollector.Collect: %v", err)
	}

	if !strings.Contains(gotQuery, `view: "new"`) {
		t.Errorf("GraphQL query missing view filter: %q", gotQuery)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (open thread filtered by keyword)", len(records))
	}

	rec := records[0]
	if rec.Title != "What Tokenization Tells Us About Model Behavior" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Source != types.SourceLessWrong {
		t.Errorf("Source = %q, want lesswrong", rec.Source)
	}
	if len(rec.Authors) != 1 || rec.Authors[0] != "researcher1" {
		t.Errorf("Authors = %v", rec.Authors)
	}
	if rec.Published != "2025-08-10" {
		t.Errorf("Published = %q, want 2025-08-10", rec.Published)
	}
	if rec.URL != "https://www.lesswrong.com/posts/abc123/tokenization-behavior" {
		t.Errorf("URL = %q", rec.URL)
	}
}

func TestForumCollectorNames(t *testing.T) {
	if got := NewLessWrongCollector(nil).Name(); got != "lesswrong" {
		t.Errorf("Name() = %q, want lesswrong", got)
	}
	if got := NewAlignmentForumCollector(nil).Name(); got != "alignment_forum" {
		t.Errorf("Name() = %q, want alignment_forum", got)
	}
}

func TestForumCollectorHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := alignmentForumAPIBase
	alignmentForumAPIBase = ts.URL
	defer func() { alignmentForumAPIBase = old }()

	c := NewAlignmentForumCollector(ts.Client())
	if _, err := c.Collect(context.Background(), testKeywords, testCfg()); err == nil {
		t.Error("expected error on HTTP 500")
	}
}
