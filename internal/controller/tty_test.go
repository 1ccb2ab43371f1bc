package controller

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsTTY(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	if IsTTY(f) {
		t.Fatalf("IsTTY() = true for a regular file")
	}

	t.Setenv("NO_COLOR", "1")
	if IsTTY(os.Stdout) {
		t.Fatalf("IsTTY() = true with NO_COLOR set")
	}
}
