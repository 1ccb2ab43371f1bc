package adapter

import (
	"bytes"
	"errors"
	"io/fs"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

const generatedFilePerm fs.FileMode = 0o644

// OutputStore persists generated declarations.
type OutputStore interface {
	// Load returns the current content of a generated file.
	Load(path m.Path) ([]byte, error)
	// Save writes content to path unless the file already holds exactly that
	// content, so build tools watching mtimes do not rebuild needlessly.
	Save(path m.Path, content []byte) (bool, error)
}

type outputStore struct {
	fs SourceFSAdapter
}

// NewOutputStore returns an OutputStore backed by the given filesystem adapter.
func NewOutputStore(fsAdapter SourceFSAdapter) OutputStore {
	return &outputStore{fs: fsAdapter}
}

func (s *outputStore) Load(path m.Path) ([]byte, error) {
	return s.fs.ReadFile(path)
}

func (s *outputStore) Save(path m.Path, content []byte) (bool, error) {
	existing, err := s.fs.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	if err := s.fs.WriteFile(path, content, generatedFilePerm); err != nil {
		return false, err
	}

	return true, nil
}
