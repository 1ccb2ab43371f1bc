package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

func newTestUI(options ...UIOption) (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd, options...), &buf
}

func TestSimpleUI_DisplayModules(t *testing.T) {
	tests := []struct {
		name         string
		groups       []m.ModuleGroup
		wantContains []string
	}{
		{
			name: "single directory",
			groups: []m.ModuleGroup{{
				Root: "src",
				Modules: []m.ModuleRef{
					{Path: "/crate/src/alpha.rs", Name: "alpha"},
					{Path: "/crate/src/net/mod.rs", Name: "net"},
				},
			}},
			wantContains: []string{"src", "alpha", "/crate/src/alpha.rs", "net", "/crate/src/net/mod.rs", "TOTAL MODULES 2"},
		},
		{
			name: "multiple directories",
			groups: []m.ModuleGroup{
				{Root: "src", Modules: []m.ModuleRef{{Path: "/crate/src/a.rs", Name: "a"}}},
				{Root: "benches", Modules: []m.ModuleRef{{Path: "/crate/benches/util_io.rs", Name: "util_io"}}},
			},
			wantContains: []string{"src", "benches", "util_io", "TOTAL MODULES 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestUI()

			if err := ui.DisplayModules(context.Background(), tt.groups); err != nil {
				t.Fatalf("DisplayModules() error = %v", err)
			}

			got := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(strings.ToUpper(got), strings.ToUpper(want)) {
					t.Errorf("DisplayModules() output missing %q, got: %s", want, got)
				}
			}
		})
	}
}

func TestSimpleUI_DisplayModules_Cancelled(t *testing.T) {
	ui, buf := newTestUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.DisplayModules(ctx, []m.ModuleGroup{{Root: "src"}}); err == nil {
		t.Fatalf("DisplayModules() expected error for cancelled context")
	}

	if buf.Len() != 0 {
		t.Fatalf("DisplayModules() wrote output after cancellation: %q", buf.String())
	}
}

func TestSimpleUI_DisplayGenerated(t *testing.T) {
	ui, buf := newTestUI(WithColor(true))
	content := "#[path = \"a.rs\"]\nmod a;\n"

	if err := ui.DisplayGenerated(context.Background(), []byte(content)); err != nil {
		t.Fatalf("DisplayGenerated() error = %v", err)
	}

	if buf.String() != content {
		t.Fatalf("DisplayGenerated() = %q, want %q", buf.String(), content)
	}
}

func TestSimpleUI_DisplayWritten(t *testing.T) {
	tests := []struct {
		name    string
		changed bool
		want    string
	}{
		{"changed", true, "wrote src/modules.rs\n"},
		{"unchanged", false, "src/modules.rs is up to date\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestUI()
			ui.DisplayWritten(context.Background(), "src/modules.rs", tt.changed)

			if buf.String() != tt.want {
				t.Fatalf("DisplayWritten() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	ui, buf := newTestUI()
	diff := "--- out.rs\n+++ generated\n@@ -1 +1 @@\n-mod old;\n+mod new;\n"

	ui.DisplayDiff(context.Background(), "out.rs", diff)

	want := "out.rs is out of date:\n" + diff
	if buf.String() != want {
		t.Fatalf("DisplayDiff() = %q, want %q", buf.String(), want)
	}
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	plain, ok := NewUI(cmd, false).(*SimpleUI)
	if !ok || plain.color {
		t.Fatalf("NewUI(false) = %#v, want uncoloured SimpleUI", plain)
	}

	styled, ok := NewUI(cmd, true).(*SimpleUI)
	if !ok || !styled.color {
		t.Fatalf("NewUI(true) = %#v, want coloured SimpleUI", styled)
	}
}
