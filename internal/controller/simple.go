package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "dirmod.dev/pkg/dirmod/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, options ...UIOption) *SimpleUI {
	cfg := uiConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	return &SimpleUI{cmd: cmd, color: cfg.color}
}

// DisplayModules prints one table per scanned directory.
func (s *SimpleUI) DisplayModules(ctx context.Context, groups []m.ModuleGroup) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, group := range groups {
		if i > 0 {
			s.printf("\n")
		}

		s.printf("%s\n", s.paint(titleStyle, string(group.Root)))
		s.printf("%s", renderModuleTable(group.Modules))
	}

	return nil
}

func renderModuleTable(modules []m.ModuleRef) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Module", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, ref := range modules {
		table.Append([]string{ref.Name, string(ref.Path)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Modules %d", len(modules)),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayGenerated writes generated declarations verbatim.
func (s *SimpleUI) DisplayGenerated(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.cmd.OutOrStdout().Write(content)

	return err
}

// DisplayWritten reports the outcome of writing a generated file.
func (s *SimpleUI) DisplayWritten(ctx context.Context, path m.Path, changed bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !changed {
		s.printf("%s\n", s.paint(mutedStyle, fmt.Sprintf("%s is up to date", path)))
		return
	}

	s.printf("wrote %s\n", path)
}

// DisplayDiff prints a unified diff, colouring added and removed lines.
func (s *SimpleUI) DisplayDiff(ctx context.Context, path m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", s.paint(titleStyle, fmt.Sprintf("%s is out of date:", path)))

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			s.printf("%s", line)
		case strings.HasPrefix(line, "+"):
			s.printf("%s", s.paintLine(addedStyle, line))
		case strings.HasPrefix(line, "-"):
			s.printf("%s", s.paintLine(removedStyle, line))
		default:
			s.printf("%s", line)
		}
	}
}

func (s *SimpleUI) paint(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}

	return style.Render(text)
}

// paintLine styles a line without its trailing newline.
func (s *SimpleUI) paintLine(style lipgloss.Style, line string) string {
	body, found := strings.CutSuffix(line, "\n")
	if !found {
		return s.paint(style, body)
	}

	return s.paint(style, body) + "\n"
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
