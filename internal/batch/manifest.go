package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/orcatools/orcabatch/pkg/api"
)

// ManifestFile is written into the output root when --manifest is set.
const ManifestFile = "batch.yaml"

// WriteManifest serializes the run description as YAML into the output root.
func WriteManifest(outRoot string, m api.Manifest) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(outRoot, ManifestFile)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
