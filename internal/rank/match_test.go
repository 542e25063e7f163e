package rank

import (
	"math"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Tokenization Is More Than Compression", "tokenization is more than compression"},
		{"BPE: A Byte-Pair  Encoding   Survey!", "bpe a bytepair encoding survey"},
		{"  Attention Is All You Need  ", "attention is all you need"},
		{"Ünïcödé stripped", "ncd stripped"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "abcd", "abcd", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "abcd", "", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
		// 2*M/T: M=3 ("abc"), T=8.
		{"partial", "abcd", "bcde", 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a, b := "tokenization survey", "image generation survey"
	if got, rev := Similarity(a, b), Similarity(b, a); math.Abs(got-rev) > 1e-9 {
		t.Errorf("Similarity not symmetric: %f vs %f", got, rev)
	}
}

func TestTitlesMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"case and punctuation insensitive",
			"Tokenization Is More Than Compression",
			"Tokenization is More Than Compression", true},
		{"different works",
			"Tokenization survey",
			"Image generation survey", false},
		{"trailing qualifier",
			"Byte Pair Encoding for Language Models",
			"Byte Pair Encoding for Language Models (v2)", true},
		{"both empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitlesMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("TitlesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTitlesMatchThreshold(t *testing.T) {
	a, b := "token merging", "token mergers"
	if !TitlesMatchThreshold(a, b, 0.5) {
		t.Errorf("expected match at low threshold")
	}
	if TitlesMatchThreshold(a, b, 0.999) {
		t.Errorf("expected no match at threshold near 1")
	}
}
