package collect

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/digest-engine/pkg/types"
)

func TestBatchFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")

	keywords := types.KeywordsConfig{
		Primary:   []string{"tokenization"},
		Secondary: []string{"language model"},
	}
	out := Output{
		Records: []types.Record{
			{
				Title:     "Tokenization Is More Than Compression",
				Authors:   []string{"Ada Lovelace"},
				Abstract:  "We study tokenization.",
				URL:       "https://arxiv.org/abs/2501.01234",
				Published: "2025-08-01",
				Source:    types.SourceArxiv,
			},
		},
		SourceErrors: []string{"web: no API key configured"},
	}

	if err := WriteBatchFile(path, keywords, out); err != nil {
		t.Fatalf("WriteBatchFile: %v", err)
	}

	bf, err := ReadBatchFile(path)
	if err != nil {
		t.Fatalf("ReadBatchFile: %v", err)
	}
	if len(bf.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(bf.Records))
	}
	if bf.Records[0].Title != out.Records[0].Title {
		t.Errorf("Title = %q", bf.Records[0].Title)
	}
	if bf.Summary.Total != 1 {
		t.Errorf("Summary.Total = %d, want 1", bf.Summary.Total)
	}
	if len(bf.Summary.SourceErrors) != 1 {
		t.Errorf("Summary.SourceErrors = %v", bf.Summary.SourceErrors)
	}
	if bf.Keywords.Primary[0] != "tokenization" {
		t.Errorf("Keywords.Primary = %v", bf.Keywords.Primary)
	}
	if bf.Summary.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestReadBatchFileMissing(t *testing.T) {
	if _, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
