// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportIssueYAML writes one archived issue to path as YAML.
func (s *Store) ExportIssueYAML(ctx context.Context, number int, path string) error {
	issue, err := s.GetIssue(ctx, number)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(issue)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportIssueJSON writes one archived issue to path as indented JSON.
func (s *Store) ExportIssueJSON(ctx context.Context, number int, path string) error {
	issue, err := s.GetIssue(ctx, number)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(issue, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
