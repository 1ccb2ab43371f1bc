package adapter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

func TestOutputStore_Save(t *testing.T) {
	store := NewOutputStore(NewLocalSourceFSAdapter())

	root := t.TempDir()
	path := filepath.Join(root, "modules.rs")
	content := []byte("#[path = \"a.rs\"]\nmod a;\n")

	changed, err := store.Save(m.Path(path), content)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !changed {
		t.Fatalf("Save() changed = false for a new file")
	}

	if got := readTestFile(t, path); got != string(content) {
		t.Fatalf("Save() wrote %q, want %q", got, content)
	}

	t.Run("identical content is not rewritten", func(t *testing.T) {
		past := time.Now().Add(-time.Hour).Truncate(time.Second)
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("Chtimes() error = %v", err)
		}

		changed, err := store.Save(m.Path(path), content)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if changed {
			t.Fatalf("Save() changed = true for identical content")
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}

		if !info.ModTime().Equal(past) {
			t.Fatalf("Save() touched the file: mtime %v, want %v", info.ModTime(), past)
		}
	})

	t.Run("different content is rewritten", func(t *testing.T) {
		changed, err := store.Save(m.Path(path), []byte("mod b;\n"))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if !changed {
			t.Fatalf("Save() changed = false for new content")
		}

		if got := readTestFile(t, path); got != "mod b;\n" {
			t.Fatalf("Save() wrote %q", got)
		}
	})

	t.Run("unreadable target", func(t *testing.T) {
		if _, err := store.Save(m.Path(root), content); err == nil {
			t.Fatalf("Save() expected error when target is a directory")
		}
	})
}

func TestOutputStore_Load(t *testing.T) {
	store := NewOutputStore(NewLocalSourceFSAdapter())

	root := t.TempDir()
	path := filepath.Join(root, "modules.rs")
	writeTestFile(t, path, "mod a;\n")

	got, err := store.Load(m.Path(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if string(got) != "mod a;\n" {
		t.Fatalf("Load() = %q", got)
	}

	if _, err := store.Load(m.Path(filepath.Join(root, "absent.rs"))); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load() error = %v, want fs.ErrNotExist", err)
	}
}
