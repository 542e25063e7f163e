// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Scoring weights and caps. Primary keywords dominate, a title hit counts
// on top of its full-text hit, and citations add at most a small boost.
const (
	primaryWeight   = 0.20
	primaryCap      = 0.60
	titleWeight     = 0.15
	titleCap        = 0.30
	secondaryWeight = 0.05
	secondaryCap    = 0.20
	citationWeight  = 0.01
	citationCap     = 0.10
)

// Score computes a relevance score in [0, 1] from case-insensitive keyword
// presence in the record's title and abstract plus an optional citation
// boost. Missing fields count as empty; the result is deterministic for a
// given record and keyword lists.
func Score(rec types.Record, primary, secondary []string) float64 {
	title := strings.ToLower(rec.Title)
	text := title + " " + strings.ToLower(rec.Abstract)

	score := capped(countHits(text, primary), primaryWeight, primaryCap)
	score += capped(countHits(title, primary), titleWeight, titleCap)
	score += capped(countHits(text, secondary), secondaryWeight, secondaryCap)

	if rec.CitationCount > 0 {
		score += capped(rec.CitationCount, citationWeight, citationCap)
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// countHits counts keywords contained in text (substring, case-insensitive).
func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			hits++
		}
	}
	return hits
}

func capped(hits int, weight, limit float64) float64 {
	v := float64(hits) * weight
	if v > limit {
		return limit
	}
	return v
}
