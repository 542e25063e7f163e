// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/digest-engine/internal/rank"
)

const defaultMaxResults = 20

// SearchResult is one archived record matched by a title search.
type SearchResult struct {
	IssueNumber int      `json:"issue" yaml:"issue"`
	Section     string   `json:"section" yaml:"section"`
	Title       string   `json:"title" yaml:"title"`
	Authors     []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Published   string   `json:"published,omitempty" yaml:"published,omitempty"`
}

// SearchTitles runs an FTS5 full-text search over archived record titles,
// ranked by relevance. maxResults <= 0 uses the default limit.
func (s *Store) SearchTitles(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.issue_number, r.section, r.title, r.authors, r.url, r.published
		 FROM records_fts
		 JOIN records r ON r.rowid = records_fts.rowid
		 WHERE records_fts MATCH ?
		 ORDER BY records_fts.rank
		 LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching titles: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			sr          SearchResult
			authorsJSON []byte
		)
		if err := rows.Scan(&sr.IssueNumber, &sr.Section, &sr.Title,
			&authorsJSON, &sr.URL, &sr.Published); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		if len(authorsJSON) > 0 {
			json.Unmarshal(authorsJSON, &sr.Authors)
		}
		results = append(results, sr)
	}
	return results, rows.Err()
}

// PreviouslyFeatured reports which of the given titles already appeared
// in a sectioned slot of an earlier issue. The result maps normalized
// titles to the issue number that featured them. Records that only made
// the also-published list do not count as featured.
func (s *Store) PreviouslyFeatured(ctx context.Context, titles []string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT issue_number, title FROM records WHERE section != ?`, sectionRest)
	if err != nil {
		return nil, fmt.Errorf("querying featured records: %w", err)
	}
	defer rows.Close()

	archived := make(map[string]int)
	for rows.Next() {
		var number int
		var title string
		if err := rows.Scan(&number, &title); err != nil {
			return nil, fmt.Errorf("scanning featured row: %w", err)
		}
		norm := rank.NormalizeTitle(title)
		if _, ok := archived[norm]; !ok {
			archived[norm] = number
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	featured := make(map[string]int)
	for _, title := range titles {
		norm := rank.NormalizeTitle(title)
		if number, ok := archived[norm]; ok {
			featured[norm] = number
		}
	}
	return featured, nil
}

// LatestIssueNumber returns the highest archived issue number, or zero
// when the archive is empty.
func (s *Store) LatestIssueNumber(ctx context.Context) (int, error) {
	var number int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(number), 0) FROM issues`).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("querying latest issue: %w", err)
	}
	return number, nil
}
