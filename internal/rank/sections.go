// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import "github.com/pdiddy/digest-engine/pkg/types"

// Section caps. Fixed constants rather than configuration: the digest
// layout is part of the product, not a tuning knob.
const (
	textPapersCap  = 5
	textBlogsCap   = 3
	otherPapersCap = 3
)

// CategorizeSelections builds the three capped issue sections from a ranked
// pool: academic text papers, non-academic text posts, and academic
// other-modality papers. Sections are filled in pool order under a global
// seen-titles set, so no record appears in two sections. A section may end
// up under its cap when the pool lacks matching records; that is a valid
// outcome, not an error.
func CategorizeSelections(records []types.Record) types.Sections {
	seen := make(map[string]bool, len(records))

	take := func(limit int, want func(types.Record) bool) []types.Record {
		var out []types.Record
		for _, rec := range records {
			if len(out) >= limit {
				break
			}
			key := NormalizeTitle(rec.Title)
			if seen[key] {
				continue
			}
			if !want(rec) {
				continue
			}
			seen[key] = true
			out = append(out, rec)
		}
		return out
	}

	return types.Sections{
		TextPapers: take(textPapersCap, func(r types.Record) bool {
			return r.Source.IsAcademic() && r.Topic == types.TopicText
		}),
		TextBlogs: take(textBlogsCap, func(r types.Record) bool {
			return !r.Source.IsAcademic() && r.Topic == types.TopicText
		}),
		OtherPapers: take(otherPapersCap, func(r types.Record) bool {
			return r.Source.IsAcademic() && r.Topic == types.TopicOther
		}),
	}
}

// Rest returns the pool records not claimed by any section, in pool order.
func Rest(pool []types.Record, sections types.Sections) []types.Record {
	claimed := make(map[string]bool)
	for _, rec := range sections.Selected() {
		claimed[NormalizeTitle(rec.Title)] = true
	}

	var rest []types.Record
	for _, rec := range pool {
		if !claimed[NormalizeTitle(rec.Title)] {
			rest = append(rest, rec)
		}
	}
	return rest
}
