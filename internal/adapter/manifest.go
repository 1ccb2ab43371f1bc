package adapter

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

// ManifestFileName is the crate manifest looked up in base directories.
const ManifestFileName = "Cargo.toml"

// ErrManifestNotFound is returned when a directory holds no manifest.
var ErrManifestNotFound = errors.New("manifest not found")

// Manifest is the subset of Cargo.toml that dirmod reads.
type Manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Lib *struct {
		Path string `toml:"path"`
	} `toml:"lib"`
}

// ManifestReader loads crate manifests.
type ManifestReader interface {
	ReadManifest(dir m.Path) (*Manifest, error)
}

type tomlManifestReader struct {
	fs SourceFSAdapter
}

// NewManifestReader returns a ManifestReader decoding Cargo.toml with go-toml.
func NewManifestReader(fsAdapter SourceFSAdapter) ManifestReader {
	return &tomlManifestReader{fs: fsAdapter}
}

func (r *tomlManifestReader) ReadManifest(dir m.Path) (*Manifest, error) {
	path := r.fs.JoinPath(string(dir), ManifestFileName)

	data, err := r.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrManifestNotFound
		}

		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &manifest, nil
}
