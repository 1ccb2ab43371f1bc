package domain

import (
	"errors"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

var (
	// ErrNoSourceFiles is returned when a complete scan yields no modules.
	ErrNoSourceFiles = errors.New("no source files found")
	// ErrInvalidIdentifier is returned when a derived name cannot be declared.
	ErrInvalidIdentifier = errors.New("invalid module identifier")
	// ErrInvalidVisibility is returned for an unrecognised visibility qualifier.
	ErrInvalidVisibility = errors.New("invalid visibility qualifier")
	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrStale is returned by Check when the generated file is out of date.
	ErrStale = errors.New("generated output is out of date")
)

// IOError wraps a filesystem failure met during a scan. Its message is the
// underlying error's message, unchanged.
type IOError struct {
	Op   string
	Path m.Path
	Err  error
}

func (e *IOError) Error() string {
	return e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
