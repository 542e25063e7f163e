// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the digest-engine pipeline.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// Source tags the origin of a record. Academic sources report papers;
// everything else (including unknown tags) is treated as community content.
type Source string

const (
	SourceArxiv           Source = "arxiv"
	SourceSemanticScholar Source = "semantic_scholar"
	SourceGoogleScholar   Source = "google_scholar"
	SourceHuggingFaceBlog Source = "huggingface_blog"
	SourceLessWrong       Source = "lesswrong"
	SourceAlignmentForum  Source = "alignment_forum"
	SourceWeb             Source = "web"
)

// IsAcademic reports whether the source is one of the academic search APIs.
// Unknown tags are non-academic.
func (s Source) IsAcademic() bool {
	switch s {
	case SourceArxiv, SourceSemanticScholar, SourceGoogleScholar:
		return true
	}
	return false
}

// Topic labels a record's modality after classification.
type Topic string

const (
	// TopicText covers text processing and linguistics work, the digest's
	// main beat. Records with no modality signal default here.
	TopicText Topic = "text"

	// TopicOther covers speech, vision, robotics, bio/chem, music, and
	// 3D work that mentions the digest's keywords in passing.
	TopicOther Topic = "other"
)

// Record is one paper, blog post, or article flowing through the pipeline.
// Collectors fill the source fields; the ranking stage fills RelevanceScore,
// Topic, and AlsoFoundIn; the summarizer may attach Summary but never
// touches the ranking fields.
type Record struct {
	// Title is the paper or post title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in source order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the abstract or excerpt. May be empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// URL links to the paper or post. May be empty.
	URL string `json:"url" yaml:"url"`

	// Published is the publication date as an ISO string (YYYY-MM-DD).
	// Empty or unparseable dates sort lowest; they are never an error.
	Published string `json:"published" yaml:"published"`

	// Source identifies which collector produced this record.
	Source Source `json:"source" yaml:"source"`

	// CitationCount is the citation count where the source reports one
	// (Semantic Scholar). Zero otherwise.
	CitationCount int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`

	// RelevanceScore is a value in [0, 1] computed by the ranking stage.
	// It is recomputed fresh on every run and never carried across runs.
	RelevanceScore float64 `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`

	// Topic is the modality label assigned after deduplication.
	Topic Topic `json:"topic,omitempty" yaml:"topic,omitempty"`

	// AlsoFoundIn records the source tag of a duplicate this record
	// absorbed during deduplication.
	AlsoFoundIn Source `json:"also_found_in,omitempty" yaml:"also_found_in,omitempty"`

	// Summary is attached by the summarizer for selected records.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Richness measures how much information a record carries, used to pick the
// surviving copy when two sources report the same work.
func (r Record) Richness() int {
	return len(r.Abstract) + len(r.Authors)
}

// Sections holds the capped output buckets of one digest issue.
type Sections struct {
	// TextPapers holds up to 5 academic records with Topic == text.
	TextPapers []Record `json:"text_papers" yaml:"text_papers"`

	// TextBlogs holds up to 3 non-academic records with Topic == text.
	TextBlogs []Record `json:"text_blogs" yaml:"text_blogs"`

	// OtherPapers holds up to 3 academic records with Topic == other.
	OtherPapers []Record `json:"other_papers" yaml:"other_papers"`
}

// Selected returns all sectioned records in render order.
func (s Sections) Selected() []Record {
	out := make([]Record, 0, len(s.TextPapers)+len(s.TextBlogs)+len(s.OtherPapers))
	out = append(out, s.TextPapers...)
	out = append(out, s.TextBlogs...)
	out = append(out, s.OtherPapers...)
	return out
}
