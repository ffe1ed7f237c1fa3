package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arran4/event-barcodes/internal/domain"
)

// ManifestFile is written next to the generated PNGs.
const ManifestFile = "manifest.yaml"

// Manifest records which file belongs to which identifier.
type Manifest struct {
	Kind        string          `yaml:"kind"`
	AppURL      string          `yaml:"app_url"`
	GeneratedAt time.Time       `yaml:"generated_at"`
	Entries     []ManifestEntry `yaml:"entries"`
}

type ManifestEntry struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Group string `yaml:"group,omitempty"`
	URL   string `yaml:"url"`
	File  string `yaml:"file"`
}

// WriteManifest writes m to dir/manifest.yaml and returns the path.
func WriteManifest(dir string, m Manifest) (string, error) {
	path := filepath.Join(dir, ManifestFile)
	b, err := yaml.Marshal(m)
	if err != nil {
		return "", &domain.OpError{Op: "batch.write_manifest", Kind: domain.KindIO, Path: path, Err: err}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", &domain.OpError{Op: "batch.write_manifest", Kind: domain.KindIO, Path: path, Err: err}
	}
	return path, nil
}

// ReadManifest loads dir/manifest.yaml.
func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, &domain.OpError{Op: "batch.read_manifest", Kind: domain.KindNotFound, Path: path, Err: err}
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, &domain.OpError{Op: "batch.read_manifest", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}
	for i, e := range m.Entries {
		if e.File == "" {
			return Manifest{}, &domain.OpError{
				Op:   "batch.read_manifest",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  fmt.Errorf("entries[%d]: file is required", i),
			}
		}
	}
	return m, nil
}
