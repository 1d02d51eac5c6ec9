// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mappinginput

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// WriteBundle writes one subject's bundle to dir/<subject>-input.yaml.
func WriteBundle(dir string, bundle *types.SubjectBundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating bundle directory: %w", err)
	}
	data, err := yaml.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("marshaling bundle %s: %w", bundle.Subject, err)
	}
	path := filepath.Join(dir, bundle.Subject+"-input.yaml")
	return os.WriteFile(path, data, 0o644)
}

// ReadBundle loads a bundle written by WriteBundle.
func ReadBundle(path string) (*types.SubjectBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}
	var bundle types.SubjectBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing bundle %s: %w", path, err)
	}
	return &bundle, nil
}
