// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/digest-engine/internal/httputil"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "paperId,title,abstract,authors,url,citationCount,publicationDate,year"

// SemanticScholarCollector queries the Semantic Scholar graph API, one
// request per keyword, and merges the result pages by paper ID.
type SemanticScholarCollector struct {
	Client *http.Client
	APIKey string
}

// Name returns the source identifier.
func (c *SemanticScholarCollector) Name() string { return "semantic_scholar" }

// Collect runs one search per keyword with a publication date floor and
// returns the union of results. Semantic Scholar treats a multi-word query
// as a conjunction, so keywords are queried separately rather than joined.
func (c *SemanticScholarCollector) Collect(ctx context.Context, keywords []string, cfg types.CollectConfig) ([]types.Record, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}

	cutoff := cutoffDate(cfg).Format("2006-01-02")
	seen := make(map[string]bool)
	var records []types.Record

	for _, kw := range keywords {
		papers, err := c.search(ctx, kw, cutoff, cfg)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", kw, err)
		}

		for _, paper := range papers {
			if paper.Title == "" || seen[paper.PaperID] {
				continue
			}
			seen[paper.PaperID] = true

			rec := types.Record{
				Title:         paper.Title,
				Abstract:      paper.Abstract,
				URL:           paper.URL,
				Published:     paper.PublicationDate,
				Source:        types.SourceSemanticScholar,
				CitationCount: paper.CitationCount,
			}
			for _, a := range paper.Authors {
				rec.Authors = append(rec.Authors, a.Name)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// search runs a single keyword query against the paper search endpoint.
func (c *SemanticScholarCollector) search(ctx context.Context, keyword, cutoff string, cfg types.CollectConfig) ([]semanticPaper, error) {
	params := url.Values{
		"query":                 {keyword},
		"limit":                 {fmt.Sprintf("%d", maxPerSource(cfg))},
		"fields":                {semanticFields},
		"publicationDateOrYear": {cutoff + ":"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	apiKey := c.APIKey
	if apiKey == "" {
		apiKey = cfg.SemanticScholarAPIKey
	}
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return sr.Data, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string           `json:"paperId"`
	Title           string           `json:"title"`
	Abstract        string           `json:"abstract"`
	URL             string           `json:"url"`
	CitationCount   int              `json:"citationCount"`
	PublicationDate string           `json:"publicationDate"`
	Year            int              `json:"year"`
	Authors         []semanticAuthor `json:"authors"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}
