// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats a digest issue as Markdown and Substack-compatible
// HTML.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// NewIssue builds an Issue dated with the given month.
func NewIssue(number int, now time.Time, sections types.Sections, rest []types.Record) types.Issue {
	return types.Issue{
		Number:   number,
		Date:     now.Format("January 2006"),
		Sections: sections,
		Rest:     rest,
	}
}

const maxAuthorsShown = 3

// FormatAuthors joins author names, truncating long lists to the first
// three plus "et al.".
func FormatAuthors(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	if len(authors) <= maxAuthorsShown {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:maxAuthorsShown], ", ") + " et al."
}

// Filename returns the issue's output file name for the given extension,
// e.g. "issue_3_202508.md".
func Filename(number int, now time.Time, ext string) string {
	return fmt.Sprintf("issue_%d_%s.%s", number, now.Format("200601"), ext)
}

// metaLine joins the author list and date with a middle dot.
func metaLine(rec types.Record) string {
	var meta []string
	if authors := FormatAuthors(rec.Authors); authors != "" {
		meta = append(meta, authors)
	}
	if rec.Published != "" {
		meta = append(meta, rec.Published)
	}
	return strings.Join(meta, " · ")
}
