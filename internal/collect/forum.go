// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Forum GraphQL endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	lesswrongAPIBase      = "https://www.lesswrong.com/graphql"
	alignmentForumAPIBase = "https://www.alignmentforum.org/graphql"
)

const forumPostLimit = 100

// ForumCollector queries a LessWrong-style GraphQL API for recent posts.
// The API has no full-text search, so it fetches the newest posts inside
// the lookback window and filters by keyword client-side.
type ForumCollector struct {
	Client  *http.Client
	source  types.Source
	apiBase *string
}

// NewLessWrongCollector returns a collector for lesswrong.com.
func NewLessWrongCollector(client *http.Client) *ForumCollector {
	return &ForumCollector{Client: client, source: types.SourceLessWrong, apiBase: &lesswrongAPIBase}
}

// NewAlignmentForumCollector returns a collector for alignmentforum.org.
func NewAlignmentForumCollector(client *http.Client) *ForumCollector {
	return &ForumCollector{Client: client, source: types.SourceAlignmentForum, apiBase: &alignmentForumAPIBase}
}

// Name returns the source identifier.
func (c *ForumCollector) Name() string { return string(c.source) }

// Collect fetches recent posts and keeps those mentioning a keyword in the
// title or excerpt.
func (c *ForumCollector) Collect(ctx context.Context, keywords []string, cfg types.CollectConfig) ([]types.Record, error) {
	cutoff := cutoffDate(cfg).UTC().Format("2006-01-02T15:04:05.000Z")
	query := fmt.Sprintf(`{
  posts(input: {terms: {view: "new", limit: %d, after: "%s"}}) {
    results {
      _id
      title
      pageUrl
      postedAt
      baseScore
      user { username }
      plaintextExcerpt
    }
  }
}`, forumPostLimit, cutoff)

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshaling GraphQL query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *c.apiBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forum API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forum API returned HTTP %d", resp.StatusCode)
	}

	var fr forumResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("parsing forum response: %w", err)
	}

	var records []types.Record
	for _, post := range fr.Data.Posts.Results {
		if post.Title == "" {
			continue
		}
		if !matchesAnyKeyword(post.Title+" "+post.PlaintextExcerpt, keywords) {
			continue
		}

		rec := types.Record{
			Title:    post.Title,
			Abstract: clip(post.PlaintextExcerpt, abstractClip),
			URL:      post.PageURL,
			Source:   c.source,
		}
		if post.User.Username != "" {
			rec.Authors = []string{post.User.Username}
		}
		if t, parseErr := time.Parse(time.RFC3339, post.PostedAt); parseErr == nil {
			rec.Published = t.Format("2006-01-02")
		}

		records = append(records, rec)
	}
	return records, nil
}

// Forum GraphQL JSON structures.
type forumResponse struct {
	Data struct {
		Posts struct {
			Results []forumPost `json:"results"`
		} `json:"posts"`
	} `json:"data"`
}

type forumPost struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	PageURL   string `json:"pageUrl"`
	PostedAt  string `json:"postedAt"`
	BaseScore int    `json:"baseScore"`
	User      struct {
		Username string `json:"username"`
	} `json:"user"`
	PlaintextExcerpt string `json:"plaintextExcerpt"`
}
