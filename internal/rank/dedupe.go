// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import "github.com/pdiddy/digest-engine/pkg/types"

// Deduplicate collapses records that report the same work from different
// sources, keeping the richer copy (longer abstract plus more authors) and
// recording the absorbed copy's source as AlsoFoundIn on the survivor.
//
// Each incoming record is compared against the already-accepted
// representatives in order and merged into the first one whose title
// matches. The surviving representative keeps its position in the output.
// O(n²) title comparisons; fine at per-run batch sizes (tens to low
// hundreds), a scaling ceiling rather than a bug beyond that.
func Deduplicate(records []types.Record) []types.Record {
	var unique []types.Record

	for _, rec := range records {
		merged := false
		for i := range unique {
			if !TitlesMatch(rec.Title, unique[i].Title) {
				continue
			}
			if rec.Richness() > unique[i].Richness() {
				rec.AlsoFoundIn = unique[i].Source
				unique[i] = rec
			} else {
				unique[i].AlsoFoundIn = rec.Source
			}
			merged = true
			break
		}
		if !merged {
			unique = append(unique, rec)
		}
	}

	return unique
}
