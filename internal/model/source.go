// Package model defines the data structures shared by the scanner, the
// emitter and the CLI.
package model

// Path represents a file system path.
type Path string

// ModuleRef is one discovered module: the file backing it and the identifier
// it is declared under.
type ModuleRef struct {
	Path Path
	Name string
}

// ModuleGroup holds the modules discovered under one scanned directory.
type ModuleGroup struct {
	Root    Path
	Modules []ModuleRef
}

// Layout describes the file naming conventions of the target language.
type Layout struct {
	// Extension identifies source files, without the leading dot.
	Extension string
	// ModuleMarker is the file that turns a directory into a single module.
	ModuleMarker string
	// CrateRoots are the files that stand for the whole compilation unit.
	CrateRoots []string
	// ReservedFiles are canonical paths of individual files that are never
	// modules, such as a library root named by the crate manifest.
	ReservedFiles []Path
}

// DefaultLayout returns the Rust layout: *.rs sources, mod.rs directory
// modules and lib.rs/main.rs crate roots.
func DefaultLayout() Layout {
	return Layout{
		Extension:    "rs",
		ModuleMarker: "mod.rs",
		CrateRoots:   []string{"lib.rs", "main.rs"},
	}
}

// IsReserved reports whether name is the enclosing scope's own file and so
// never a child module.
func (l Layout) IsReserved(name string) bool {
	if name == l.ModuleMarker {
		return true
	}

	for _, root := range l.CrateRoots {
		if name == root {
			return true
		}
	}

	return false
}

// IsReservedFile reports whether the canonical path is one of ReservedFiles.
func (l Layout) IsReservedFile(canonical Path) bool {
	for _, path := range l.ReservedFiles {
		if path == canonical {
			return true
		}
	}

	return false
}
