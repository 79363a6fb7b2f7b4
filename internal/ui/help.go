package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"pixview/internal/ui/input"
)

// errNoProgram is returned when a pager is requested before the program runs
var errNoProgram = errors.New("program not set")

// RenderHelpContent generates the help text shown in the pager
func RenderHelpContent(keys input.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(b key.Binding, desc string) string {
		return fmt.Sprintf("  %s%s\n", keyStyle.Render(b.Help().Key), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("pixview Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Images"))
	help.WriteString("\n")
	help.WriteString(line(keys.Next, "Next image in the directory"))
	help.WriteString(line(keys.Previous, "Previous image in the directory"))
	help.WriteString(line(keys.Open, "Open an image by path"))
	help.WriteString(line(keys.Info, "Show image information"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("View"))
	help.WriteString("\n")
	help.WriteString(line(keys.Fit, "Zoom to fit the window"))
	help.WriteString(line(keys.Actual, "Zoom to one image pixel per screen pixel"))
	help.WriteString(line(keys.Background, "Toggle light/dark background"))
	help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render("wheel"), descStyle.Render("Zoom in/out (never below fit)")))
	help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render("drag"), descStyle.Render("Pan a zoomed image")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line(keys.Help, "Show this help"))
	help.WriteString(strings.TrimSuffix(line(keys.Quit, "Quit"), "\n"))

	return help.String()
}

// PagerOps shows text in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// Show runs ov on content until the user quits it
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
