// Package adapter contains infrastructure adapters for the dirmod CLI.
package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning source trees. It intentionally hides direct `os`
// access so the scanning logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// ReadDir lists the entries of a directory. Order is unspecified.
	ReadDir(path m.Path) ([]fs.DirEntry, error)

	// FileInfo returns metadata for a path, following symlinks.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Canonicalize returns the absolute path with every symlink resolved.
	Canonicalize(path m.Path) (m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// WorkingDir returns the current working directory.
	WorkingDir() (m.Path, error)

	// FindProjectRoot searches startDir and its parents for a directory
	// holding a file called marker.
	FindProjectRoot(startDir m.Path, marker string) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed implementation of SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadDir lists directory entries. Each call opens and closes its own handle.
func (a *LocalSourceFSAdapter) ReadDir(path m.Path) ([]fs.DirEntry, error) {
	return os.ReadDir(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Canonicalize resolves path to an absolute, symlink-free form.
func (a *LocalSourceFSAdapter) Canonicalize(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path is chosen by the user running the generator
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// WorkingDir returns the process working directory.
func (a *LocalSourceFSAdapter) WorkingDir() (m.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return m.Path(wd), nil
}

// FindProjectRoot walks up from startDir until a directory containing marker is found.
func (a *LocalSourceFSAdapter) FindProjectRoot(startDir m.Path, marker string) (m.Path, error) {
	dir, err := filepath.Abs(string(startDir))
	if err != nil {
		return "", err
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && !info.IsDir() {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in %s or any parent directory", marker, startDir)
		}

		dir = parent
	}
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
