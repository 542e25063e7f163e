// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect gathers candidate records from academic APIs, RSS feeds,
// forum APIs, and web search, and returns them as one combined pool.
package collect

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Collector gathers records from a single source. Each source (arXiv,
// Semantic Scholar, feeds, forums, web search) implements this interface
// per the Strategy pattern.
type Collector interface {
	Name() string
	Collect(ctx context.Context, keywords []string, cfg types.CollectConfig) ([]types.Record, error)
}

// Output holds the combined records and per-source failure messages.
type Output struct {
	Records      []types.Record
	SourceErrors []string
}

// CollectAll fans the keyword list out to all collectors concurrently and
// combines their records. A failing source contributes a warning and an
// entry in SourceErrors rather than aborting the run; the digest is built
// from whatever the remaining sources returned.
func CollectAll(ctx context.Context, collectors []Collector, keywords []string, cfg types.CollectConfig, w io.Writer) (Output, error) {
	if len(collectors) == 0 {
		return Output{}, fmt.Errorf("no collectors configured")
	}

	type sourceResult struct {
		records []types.Record
		err     error
		name    string
	}

	ch := make(chan sourceResult, len(collectors))
	var wg sync.WaitGroup

	for i, c := range collectors {
		if i > 0 && cfg.InterSourceDelay > 0 {
			time.Sleep(cfg.InterSourceDelay)
		}
		wg.Add(1)
		go func(c Collector) {
			defer wg.Done()
			records, err := c.Collect(ctx, keywords, cfg)
			ch <- sourceResult{records: records, err: err, name: c.Name()}
		}(c)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var out Output
	for sr := range ch {
		if sr.err != nil {
			msg := fmt.Sprintf("%s: %v", sr.name, sr.err)
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", sr.name, sr.err)
			continue
		}
		fmt.Fprintf(w, "collected %d from %s\n", len(sr.records), sr.name)
		out.Records = append(out.Records, sr.records...)
	}

	return out, nil
}

// cutoffDate returns the start of the collection window.
func cutoffDate(cfg types.CollectConfig) time.Time {
	days := cfg.LookbackDays
	if days <= 0 {
		days = 35
	}
	return time.Now().AddDate(0, 0, -days)
}

// maxPerSource returns the per-source result cap.
func maxPerSource(cfg types.CollectConfig) int {
	if cfg.MaxPerSource > 0 {
		return cfg.MaxPerSource
	}
	return 50
}

// matchesAnyKeyword reports whether text contains at least one keyword,
// case-insensitive. Sources without server-side search filter client-side
// with this.
func matchesAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// stripHTML removes markup tags from feed text. Entity decoding is left to
// the feed parser, which already unescapes item fields.
func stripHTML(text string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(text, ""))
}

// clip truncates a string to at most n runes. Abstracts from feed and
// forum excerpts can run to many kilobytes; the digest only needs enough
// for scoring and display.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

const abstractClip = 500
