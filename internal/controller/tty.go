package controller

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether f is an interactive terminal that should receive
// styled output. NO_COLOR disables styling.
func IsTTY(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
