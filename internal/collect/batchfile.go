// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// BatchFile is the on-disk representation of one collection run. A batch
// can be ranked and rendered later without re-querying any source.
type BatchFile struct {
	Keywords types.KeywordsConfig `yaml:"keywords"`
	Records  []types.Record       `yaml:"records"`
	Summary  BatchSummary         `yaml:"summary"`
}

// BatchSummary stores collection statistics and a timestamp.
type BatchSummary struct {
	Total        int       `yaml:"total"`
	SourceErrors []string  `yaml:"source_errors,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteBatchFile saves a collection run to a YAML file.
func WriteBatchFile(path string, keywords types.KeywordsConfig, out Output) error {
	bf := BatchFile{
		Keywords: keywords,
		Records:  out.Records,
		Summary: BatchSummary{
			Total:        len(out.Records),
			SourceErrors: out.SourceErrors,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(&bf)
	if err != nil {
		return fmt.Errorf("marshaling batch file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadBatchFile loads a previously saved batch file from disk.
func ReadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	return &bf, nil
}
