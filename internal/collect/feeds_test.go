package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

func sampleRSS(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test Feed</title>` + items + `</channel></rss>`
}

func TestHuggingFaceBlogCollector(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -3).Format(time.RFC1123Z)
	items := fmt.Sprintf(`
<item>
  <title>Inside Modern Tokenizers</title>
  <link>https://huggingface.co/blog/tokenizers</link>
  <description>&lt;p&gt;How BPE tokenization works in practice.&lt;/p&gt;</description>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>Deploying Diffusion Pipelines</title>
  <link>https://huggingface.co/blog/diffusion</link>
  <description>Nothing about our topic here.</description>
  <pubDate>%s</pubDate>
</item>`, recent, recent)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleRSS(items))
	}))
	defer ts.Close()

	cfg := testCfg()
	cfg.HuggingFaceRSS = ts.URL

	c := &HuggingFaceBlogCollector{Client: ts.Client()}
	records, err := c.Collect(context.Background(), testKeywords, cfg)
	if err != nil {
		t.Fatalf("HuggingFaceBlogCollector.Collect: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (off-topic post filtered)", len(records))
	}

	rec := records[0]
	if rec.Title != "Inside Modern Tokenizers" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Abstract != "How BPE tokenization works in practice." {
		t.Errorf("Abstract = %q, markup should be stripped", rec.Abstract)
	}
	if rec.Source != types.SourceHuggingFaceBlog {
		t.Errorf("Source = %q, want huggingface_blog", rec.Source)
	}
	if rec.Published == "" {
		t.Error("Published should be set from pubDate")
	}
}

func TestHuggingFaceBlogCollectorNoURL(t *testing.T) {
	c := &HuggingFaceBlogCollector{Client: http.DefaultClient}
	if _, err := c.Collect(context.Background(), testKeywords, testCfg()); err == nil {
		t.Error("expected error when no RSS URL is configured")
	}
}

func TestScholarAlertsCollector(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -2).Format(time.RFC1123Z)
	items := fmt.Sprintf(`
<item>
  <title>&lt;b&gt;Tokenizer&lt;/b&gt; Effects in Multilingual Models</title>
  <link>https://example.org/paper</link>
  <description>A Lovelace, A Turing - Proceedings of Computation, 2025. We measure tokenizer effects.</description>
  <pubDate>%s</pubDate>
</item>`, recent)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleRSS(items))
	}))
	defer ts.Close()

	cfg := testCfg()
	cfg.ScholarAlertFeeds = []string{ts.URL}

	c := &ScholarAlertsCollector{Client: ts.Client()}
	records, err := c.Collect(context.Background(), testKeywords, cfg)
	if err != nil {
		t.Fatalf("ScholarAlertsCollector.Collect: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.Title != "Tokenizer Effects in Multilingual Models" {
		t.Errorf("Title = %q, markup should be stripped", rec.Title)
	}
	if want := []string{"A Lovelace", "A Turing"}; !reflect.DeepEqual(rec.Authors, want) {
		t.Errorf("Authors = %v, want %v", rec.Authors, want)
	}
	if rec.Source != types.SourceGoogleScholar {
		t.Errorf("Source = %q, want google_scholar", rec.Source)
	}
}

func TestScholarAlertsCollectorNoFeeds(t *testing.T) {
	c := &ScholarAlertsCollector{Client: http.DefaultClient}
	if _, err := c.Collect(context.Background(), testKeywords, testCfg()); err == nil {
		t.Error("expected error when no alert feeds are configured")
	}
}

func TestAlertAuthors(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{"two authors", "A Lovelace, A Turing - Journal, 2025", []string{"A Lovelace", "A Turing"}},
		{"single author", "G Hopper - arXiv preprint, 2025", []string{"G Hopper"}},
		{"no dash", "an abstract with no author prefix", nil},
		{"hyphenated name survives", "J Smith-Jones - Venue, 2025", []string{"J Smith-Jones"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alertAuthors(tt.description); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("alertAuthors(%q) = %v, want %v", tt.description, got, tt.want)
			}
		})
	}
}
