// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// WriteReport writes the rendered report to dataDir/reports/<name>.
func (s *Store) WriteReport(name, report string) (string, error) {
	dir := filepath.Join(s.dataDir, reportsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// WriteFindingsYAML writes the structured findings to
// dataDir/reports/<name> for programmatic consumption.
func (s *Store) WriteFindingsYAML(name string, f *Findings) (string, error) {
	dir := filepath.Join(s.dataDir, reportsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshaling findings: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing findings: %w", err)
	}
	return path, nil
}
