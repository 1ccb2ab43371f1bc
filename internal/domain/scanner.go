// Package domain implements directory scanning, declaration emission and the
// CLI workflows built on top of them.
package domain

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"dirmod.dev/pkg/dirmod/internal/adapter"
	m "dirmod.dev/pkg/dirmod/internal/model"
)

// Scanner discovers the modules below a directory.
type Scanner interface {
	// Scan walks root and returns one ModuleRef per module, sorted by
	// (Path, Name). It fails with *IOError on any filesystem error and with
	// ErrNoSourceFiles when nothing qualifies.
	Scan(root m.Path) ([]m.ModuleRef, error)
}

type scanner struct {
	fs     adapter.SourceFSAdapter
	layout m.Layout
}

// NewScanner creates a Scanner reading through fsAdapter and applying layout.
func NewScanner(fsAdapter adapter.SourceFSAdapter, layout m.Layout) Scanner {
	return &scanner{fs: fsAdapter, layout: layout}
}

func (s *scanner) Scan(root m.Path) ([]m.ModuleRef, error) {
	top, err := s.fs.Canonicalize(root)
	if err != nil {
		return nil, &IOError{Op: "canonicalize", Path: root, Err: err}
	}

	refs, err := s.walk(top, root)
	if err != nil {
		return nil, err
	}

	if len(refs) == 0 {
		return nil, ErrNoSourceFiles
	}

	slog.Debug("scan complete", "root", root, "modules", len(refs))

	return refs, nil
}

// walk lists current and collects the modules it contributes. top is the
// canonical scan root every name is derived against. Every entry is
// canonicalized, so a dangling symlink fails the scan even if it would have
// been skipped.
func (s *scanner) walk(top, current m.Path) ([]m.ModuleRef, error) {
	entries, err := s.fs.ReadDir(current)
	if err != nil {
		return nil, &IOError{Op: "read directory", Path: current, Err: err}
	}

	var refs []m.ModuleRef

	for _, entry := range entries {
		path := s.fs.JoinPath(string(current), entry.Name())

		canonical, err := s.fs.Canonicalize(path)
		if err != nil {
			return nil, &IOError{Op: "canonicalize", Path: path, Err: err}
		}

		kind, err := s.classify(entry, path, canonical)
		if err != nil {
			return nil, err
		}

		switch kind {
		case m.EntryModuleDir:
			name := s.name(top, canonical)
			marker := s.fs.JoinPath(string(path), s.layout.ModuleMarker)
			slog.Debug("module directory", "path", path, "name", name)
			refs = append(refs, m.ModuleRef{Path: marker, Name: name})
		case m.EntryPlainDir:
			nested, err := s.walk(top, path)
			if err != nil {
				return nil, err
			}

			refs = append(refs, nested...)
		case m.EntrySourceFile:
			refs = append(refs, m.ModuleRef{Path: path, Name: s.name(top, canonical)})
		case m.EntrySkipped:
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Path != refs[j].Path {
			return refs[i].Path < refs[j].Path
		}

		return refs[i].Name < refs[j].Name
	})

	return refs, nil
}

func (s *scanner) classify(entry fs.DirEntry, path, canonical m.Path) (m.EntryKind, error) {
	switch {
	case entry.IsDir():
		marker := s.fs.JoinPath(string(path), s.layout.ModuleMarker)

		info, err := s.fs.FileInfo(marker)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return m.EntryPlainDir, nil
			}

			return m.EntrySkipped, &IOError{Op: "stat", Path: marker, Err: err}
		}

		if info.Mode().IsRegular() {
			return m.EntryModuleDir, nil
		}

		return m.EntryPlainDir, nil
	case entry.Type().IsRegular():
		name := entry.Name()
		if s.layout.IsReserved(name) || s.layout.IsReservedFile(canonical) {
			return m.EntrySkipped, nil
		}

		if _, ext, ok := splitExt(name); ok && ext == s.layout.Extension {
			return m.EntrySourceFile, nil
		}

		return m.EntrySkipped, nil
	default:
		return m.EntrySkipped, nil
	}
}

// name derives the identifier of canonical, a strict descendant of top.
func (s *scanner) name(top, canonical m.Path) string {
	rel, err := filepath.Rel(string(top), string(canonical))
	if err != nil {
		panic("dirmod: " + err.Error())
	}

	return moduleName(rel)
}
