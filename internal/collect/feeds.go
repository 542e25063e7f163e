// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// HuggingFaceBlogCollector reads the Hugging Face blog RSS feed and keeps
// posts that mention a keyword. The feed has no server-side search, so
// filtering is client-side.
type HuggingFaceBlogCollector struct {
	Client *http.Client
}

// Name returns the source identifier.
func (c *HuggingFaceBlogCollector) Name() string { return "huggingface_blog" }

// Collect fetches the configured feed URL and filters by keyword and
// lookback window.
func (c *HuggingFaceBlogCollector) Collect(ctx context.Context, keywords []string, cfg types.CollectConfig) ([]types.Record, error) {
	if cfg.HuggingFaceRSS == "" {
		return nil, fmt.Errorf("no Hugging Face RSS URL configured")
	}

	feed, err := c.parseFeed(ctx, cfg.HuggingFaceRSS, cfg)
	if err != nil {
		return nil, fmt.Errorf("fetching Hugging Face feed: %w", err)
	}

	cutoff := cutoffDate(cfg)
	var records []types.Record
	for _, item := range feed.Items {
		description := stripHTML(item.Description)
		if !matchesAnyKeyword(item.Title+" "+description, keywords) {
			continue
		}

		rec := types.Record{
			Title:    strings.TrimSpace(item.Title),
			Abstract: clip(description, abstractClip),
			URL:      item.Link,
			Source:   types.SourceHuggingFaceBlog,
		}
		for _, a := range item.Authors {
			if a.Name != "" {
				rec.Authors = append(rec.Authors, a.Name)
			}
		}
		if item.PublishedParsed != nil {
			if item.PublishedParsed.Before(cutoff) {
				continue
			}
			rec.Published = item.PublishedParsed.Format("2006-01-02")
		}

		records = append(records, rec)
	}
	return records, nil
}

func (c *HuggingFaceBlogCollector) parseFeed(ctx context.Context, url string, cfg types.CollectConfig) (*gofeed.Feed, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent
	parser.Client = c.Client
	return parser.ParseURLWithContext(url, ctx)
}

// ScholarAlertsCollector reads Google Scholar alert RSS feeds. Alerts are
// set up manually on scholar.google.com; the resulting feed URLs go in the
// configuration. Alert feeds are already keyword-scoped, so no client-side
// keyword filter is applied.
type ScholarAlertsCollector struct {
	Client *http.Client
}

// Name returns the source identifier.
func (c *ScholarAlertsCollector) Name() string { return "google_scholar" }

// Collect fetches every configured alert feed. A failing feed fails the
// whole source; partial tolerance is handled one level up, per source.
func (c *ScholarAlertsCollector) Collect(ctx context.Context, keywords []string, cfg types.CollectConfig) ([]types.Record, error) {
	if len(cfg.ScholarAlertFeeds) == 0 {
		return nil, fmt.Errorf("no Google Scholar alert feeds configured")
	}

	cutoff := cutoffDate(cfg)
	var records []types.Record

	for _, feedURL := range cfg.ScholarAlertFeeds {
		if feedURL == "" {
			continue
		}

		parser := gofeed.NewParser()
		parser.UserAgent = cfg.UserAgent
		parser.Client = c.Client
		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching alert feed: %w", err)
		}

		for _, item := range feed.Items {
			title := stripHTML(item.Title)
			if title == "" {
				continue
			}
			description := stripHTML(item.Description)

			rec := types.Record{
				Title:    title,
				Authors:  alertAuthors(description),
				Abstract: clip(description, abstractClip),
				URL:      item.Link,
				Source:   types.SourceGoogleScholar,
			}
			if item.PublishedParsed != nil {
				if item.PublishedParsed.Before(cutoff) {
					continue
				}
				rec.Published = item.PublishedParsed.Format("2006-01-02")
			}

			records = append(records, rec)
		}
	}
	return records, nil
}

// alertAuthors extracts author names from a Scholar alert description,
// which leads with "A Author, B Author - venue, year". The separator must
// be a spaced dash so hyphenated names pass through untouched.
func alertAuthors(description string) []string {
	dash := -1
	for _, sep := range []string{" - ", " – ", " — "} {
		if i := strings.Index(description, sep); i > 0 && (dash < 0 || i < dash) {
			dash = i
		}
	}
	if dash < 0 {
		return nil
	}

	var authors []string
	for _, name := range strings.Split(description[:dash], ",") {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}
