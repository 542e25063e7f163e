// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivCollector queries the arXiv Atom API for recent papers matching the
// keyword list, restricted to the configured categories.
type ArxivCollector struct {
	Client *http.Client
}

// Name returns the source identifier.
func (c *ArxivCollector) Name() string { return "arxiv" }

// Collect queries arXiv sorted by submission date and keeps entries inside
// the lookback window.
func (c *ArxivCollector) Collect(ctx context.Context, keywords []string, cfg types.CollectConfig) ([]types.Record, error) {
	q := buildArxivQuery(keywords, cfg.ArxivCategories)
	if q == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(q), maxPerSource(cfg))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	cutoff := cutoffDate(cfg)
	var records []types.Record
	for _, entry := range feed.Entries {
		rec := types.Record{
			Title:    strings.Join(strings.Fields(entry.Title), " "),
			Abstract: strings.TrimSpace(entry.Summary),
			URL:      strings.TrimSpace(entry.ID),
			Source:   types.SourceArxiv,
		}

		for _, a := range entry.Authors {
			rec.Authors = append(rec.Authors, strings.TrimSpace(a.Name))
		}

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			if t.Before(cutoff) {
				continue
			}
			rec.Published = t.Format("2006-01-02")
		}

		records = append(records, rec)
	}
	return records, nil
}

// buildArxivQuery constructs the search_query parameter: any keyword,
// restricted to the configured categories.
func buildArxivQuery(keywords, categories []string) string {
	if len(keywords) == 0 {
		return ""
	}

	var kwParts []string
	for _, kw := range keywords {
		kwParts = append(kwParts, `all:"`+kw+`"`)
	}
	q := "(" + strings.Join(kwParts, " OR ") + ")"

	if len(categories) > 0 {
		var catParts []string
		for _, cat := range categories {
			catParts = append(catParts, "cat:"+cat)
		}
		q += " AND (" + strings.Join(catParts, " OR ") + ")"
	}
	return q
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
