package model

// EntryKind classifies a directory entry met during a scan.
type EntryKind int

const (
	// EntrySkipped is anything that does not contribute a module.
	EntrySkipped EntryKind = iota
	// EntrySourceFile is a regular file with the source extension.
	EntrySourceFile
	// EntryModuleDir is a directory holding the module marker file.
	EntryModuleDir
	// EntryPlainDir is a directory without a marker; it is descended into.
	EntryPlainDir
)

func (k EntryKind) String() string {
	switch k {
	case EntrySourceFile:
		return "source"
	case EntryModuleDir:
		return "module-dir"
	case EntryPlainDir:
		return "dir"
	default:
		return "skipped"
	}
}

// Format selects how declarations are rendered.
type Format string

const (
	// FormatRust renders `#[path = "..."] mod name;` items.
	FormatRust Format = "rust"
	// FormatJSON renders the module groups as JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the module groups as YAML.
	FormatYAML Format = "yaml"
)
