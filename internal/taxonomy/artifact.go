// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriculum-mapper/pkg/types"
)

// WriteArtifact marshals a taxonomy artifact to a YAML file, creating
// the parent directory if needed.
func WriteArtifact(path string, artifact *types.TaxonomyArtifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	data, err := yaml.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("marshaling taxonomy artifact: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadArtifact loads a taxonomy artifact written by WriteArtifact.
func ReadArtifact(path string) (*types.TaxonomyArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy artifact %s: %w", path, err)
	}
	var artifact types.TaxonomyArtifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parsing taxonomy artifact %s: %w", path, err)
	}
	return &artifact, nil
}
