package adapter

import (
	"errors"
	"path/filepath"
	"testing"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

func TestManifestReader_ReadManifest(t *testing.T) {
	reader := NewManifestReader(NewLocalSourceFSAdapter())

	tests := []struct {
		name        string
		contents    string
		wantName    string
		wantVersion string
		wantLibPath string
	}{
		{
			name:        "package only",
			contents:    "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n",
			wantName:    "demo",
			wantVersion: "0.1.0",
		},
		{
			name: "custom lib path",
			contents: `[package]
name = "demo-core"
version = "1.2.3"
edition = "2021"

[lib]
path = "src/core.rs"

[dependencies]
serde = "1"
`,
			wantName:    "demo-core",
			wantVersion: "1.2.3",
			wantLibPath: "src/core.rs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTestFile(t, filepath.Join(dir, ManifestFileName), tt.contents)

			manifest, err := reader.ReadManifest(m.Path(dir))
			if err != nil {
				t.Fatalf("ReadManifest() error = %v", err)
			}

			if manifest.Package.Name != tt.wantName {
				t.Errorf("Package.Name = %q, want %q", manifest.Package.Name, tt.wantName)
			}

			if manifest.Package.Version != tt.wantVersion {
				t.Errorf("Package.Version = %q, want %q", manifest.Package.Version, tt.wantVersion)
			}

			if tt.wantLibPath == "" {
				if manifest.Lib != nil {
					t.Errorf("Lib = %+v, want nil", manifest.Lib)
				}
				return
			}

			if manifest.Lib == nil || manifest.Lib.Path != tt.wantLibPath {
				t.Errorf("Lib = %+v, want path %q", manifest.Lib, tt.wantLibPath)
			}
		})
	}
}

func TestManifestReader_Errors(t *testing.T) {
	reader := NewManifestReader(NewLocalSourceFSAdapter())

	t.Run("missing manifest", func(t *testing.T) {
		_, err := reader.ReadManifest(m.Path(t.TempDir()))
		if !errors.Is(err, ErrManifestNotFound) {
			t.Fatalf("ReadManifest() error = %v, want ErrManifestNotFound", err)
		}
	})

	t.Run("malformed manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, ManifestFileName), "[package\nname = ")

		_, err := reader.ReadManifest(m.Path(dir))
		if err == nil || errors.Is(err, ErrManifestNotFound) {
			t.Fatalf("ReadManifest() error = %v, want parse error", err)
		}
	})
}
