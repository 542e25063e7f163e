// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const aboutText = "**Tokenization Digest** is a monthly newsletter tracking research and developments in LLM tokenization. " +
	"Whether you're a seasoned researcher or just getting started, we aim to keep you informed about " +
	"what's happening in this foundational area of language modeling."

const pickPlaceholder = "*[Your review goes here. Write about a paper, blog post, or project that caught your attention this month — it doesn't have to be from the list below.]*"

// Markdown renders the issue as a Markdown document: header, Human's Pick
// placeholder, optional editorial, the three record sections, the
// also-published list, and the footer.
func Markdown(issue types.Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tokenization Digest — Issue #%d\n", issue.Number)
	fmt.Fprintf(&b, "*%s*\n\n---\n\n", issue.Date)

	b.WriteString("## 🏆 Human's Pick\n\n")
	b.WriteString(pickPlaceholder + "\n\n---\n\n")

	if issue.Editorial != "" {
		b.WriteString("## ✍️ From the Editor\n\n")
		b.WriteString(issue.Editorial + "\n\n---\n\n")
	}

	writeMarkdownSection(&b, "## 📄 Text Processing & Linguistics", issue.Sections.TextPapers)
	writeMarkdownSection(&b, "## 📝 Blog Posts & Discussions", issue.Sections.TextBlogs)
	writeMarkdownSection(&b, "## 🔊 Tokenization Beyond Text", issue.Sections.OtherPapers)

	if len(issue.Rest) > 0 {
		b.WriteString("## 📚 Also Published This Month\n\n")
		for _, rec := range issue.Rest {
			title := recordTitle(rec)
			if rec.URL != "" {
				fmt.Fprintf(&b, "- [%s](%s)", title, rec.URL)
			} else {
				fmt.Fprintf(&b, "- %s", title)
			}
			if authors := FormatAuthors(rec.Authors); authors != "" {
				fmt.Fprintf(&b, " — %s", authors)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n---\n\n")
	}

	b.WriteString("## About\n\n")
	b.WriteString(aboutText + "\n\n")
	b.WriteString("*Have a paper, post, or project related to tokenization? Reply to this newsletter or reach out!*\n")

	return b.String()
}

// writeMarkdownSection emits one record section; empty sections are
// skipped entirely.
func writeMarkdownSection(b *strings.Builder, heading string, records []types.Record) {
	if len(records) == 0 {
		return
	}

	b.WriteString(heading + "\n\n")
	for _, rec := range records {
		fmt.Fprintf(b, "### %s\n\n", recordTitle(rec))
		if meta := metaLine(rec); meta != "" {
			b.WriteString(meta + "\n\n")
		}
		if rec.URL != "" {
			fmt.Fprintf(b, "🔗 [%s](%s)\n\n", rec.URL, rec.URL)
		}
		if rec.Summary != "" {
			b.WriteString(rec.Summary + "\n\n")
		}
		b.WriteString("---\n\n")
	}
}

func recordTitle(rec types.Record) string {
	if rec.Title == "" {
		return "Untitled"
	}
	return rec.Title
}
