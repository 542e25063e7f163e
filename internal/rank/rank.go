// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"sort"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// DefaultMinRelevance drops records with no meaningful keyword signal.
const DefaultMinRelevance = 0.15

// FilterAndRank runs the flat selection pipeline: deduplicate, score every
// survivor, drop records below minRelevance, stable-sort descending by
// (relevance, published), and truncate to maxItems.
func FilterAndRank(records []types.Record, primary, secondary []string, maxItems int, minRelevance float64) []types.Record {
	ranked := gate(records, primary, secondary, minRelevance)
	sortByRelevance(ranked)

	if maxItems > 0 && len(ranked) > maxItems {
		ranked = ranked[:maxItems]
	}
	return ranked
}

// FilterAndRankWithRest runs the same gate as FilterAndRank, classifies
// every survivor, and reserves the two highest-ranked non-academic records
// unconditionally so blog and community content is never crowded out by
// academic volume. The reserved records lead the combined ranking, which is
// split at maxItems into (top, rest).
func FilterAndRankWithRest(records []types.Record, primary, secondary []string, maxItems int, minRelevance float64) (top, rest []types.Record) {
	ranked := gate(records, primary, secondary, minRelevance)

	for i := range ranked {
		ranked[i].Topic = Classify(ranked[i])
	}

	var academic, nonAcademic []types.Record
	for _, rec := range ranked {
		if rec.Source.IsAcademic() {
			academic = append(academic, rec)
		} else {
			nonAcademic = append(nonAcademic, rec)
		}
	}

	sortByRelevance(academic)
	sortByRelevance(nonAcademic)

	reserved := nonAcademic
	if len(reserved) > 2 {
		reserved = reserved[:2]
	}
	remaining := make([]types.Record, 0, len(ranked))
	remaining = append(remaining, academic...)
	if len(nonAcademic) > 2 {
		remaining = append(remaining, nonAcademic[2:]...)
	}
	sortByRelevance(remaining)

	allRanked := make([]types.Record, 0, len(reserved)+len(remaining))
	allRanked = append(allRanked, reserved...)
	allRanked = append(allRanked, remaining...)

	if maxItems < 0 {
		maxItems = 0
	}
	if maxItems > len(allRanked) {
		maxItems = len(allRanked)
	}
	return allRanked[:maxItems], allRanked[maxItems:]
}

// gate deduplicates, scores, and filters by minimum relevance. Scores are
// recomputed fresh on every call; nothing is carried over from the input.
func gate(records []types.Record, primary, secondary []string, minRelevance float64) []types.Record {
	deduped := Deduplicate(records)

	var kept []types.Record
	for _, rec := range deduped {
		rec.RelevanceScore = Score(rec, primary, secondary)
		if rec.RelevanceScore >= minRelevance {
			kept = append(kept, rec)
		}
	}
	return kept
}

// sortByRelevance stable-sorts descending by relevance score, breaking ties
// on the more recent published date. Lexicographic comparison is valid for
// ISO YYYY-MM-DD strings; an empty published date sorts lowest.
func sortByRelevance(records []types.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].RelevanceScore != records[j].RelevanceScore {
			return records[i].RelevanceScore > records[j].RelevanceScore
		}
		return records[i].Published > records[j].Published
	})
}
