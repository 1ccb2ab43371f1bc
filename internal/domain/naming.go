package domain

import (
	"path/filepath"
	"strings"
)

// splitExt splits a file name at its last dot. A leading dot does not start
// an extension, so ".rs" has none.
func splitExt(name string) (stem, ext string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, "", false
	}

	return name[:i], name[i+1:], true
}

// moduleName maps a path relative to the scan root onto an identifier:
// extension dropped, components joined with '_', hyphens rewritten to '_'.
// rel must name a strict descendant of the root.
func moduleName(rel string) string {
	dir, base := filepath.Split(rel)
	stem, _, _ := splitExt(base)

	parts := strings.Split(filepath.ToSlash(filepath.Join(dir, stem)), "/")
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			panic("dirmod: path " + rel + " is not below the scan root")
		}
	}

	return normalizeIdent(strings.Join(parts, "_"))
}

func normalizeIdent(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
