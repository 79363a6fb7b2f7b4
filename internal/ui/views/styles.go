package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Info          lipgloss.Style
	Prompt        lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Help          lipgloss.Style
	Disabled      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Info:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Prompt:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // yellow
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Help:          lipgloss.NewStyle().Faint(true),
		Disabled:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true),
	}
}
