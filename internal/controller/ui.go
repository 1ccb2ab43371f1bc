// Package controller provides output adapters for displaying scan results.
package controller

import (
	"context"

	"github.com/spf13/cobra"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

// UIOption is a functional option for NewSimpleUI.
type UIOption func(*uiConfig)

type uiConfig struct {
	color bool
}

// WithColor enables lipgloss styling of titles and diffs.
func WithColor(enabled bool) UIOption {
	return func(c *uiConfig) {
		c.color = enabled
	}
}

// UI defines how workflow results reach the user.
// Implementations can use different output methods (plain text, styled, etc).
type UI interface {
	DisplayModules(ctx context.Context, groups []m.ModuleGroup) error
	DisplayGenerated(ctx context.Context, content []byte) error
	DisplayWritten(ctx context.Context, path m.Path, changed bool)
	DisplayDiff(ctx context.Context, path m.Path, diff string)
}

// NewUI returns the UI for cmd, styled when writing to a terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return NewSimpleUI(cmd, WithColor(tty))
}
