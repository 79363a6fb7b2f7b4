package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Rows taken by the header and the footer; the image gets the rest
const (
	HeaderHeight = 1
	FooterHeight = 2
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Path          string
	ImageWidth    int
	ImageHeight   int
	Zoom          float64
	Background    string
	Body          string
	StatusMessage string
	StatusIsError bool
	Prompt        string
	TextInput     string // rendered text input, empty outside text modes
	HasPrev       bool
	HasNext       bool
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view: header, image body, status and help
func (r *Renderer) Render(state ViewState) string {
	bodyHeight := max(state.Height-HeaderHeight-FooterHeight, 0)

	body := state.Body
	if state.Path == "" {
		body = lipgloss.Place(state.Width, bodyHeight, lipgloss.Center, lipgloss.Center,
			r.styles.Dim.Render("No image. Press o to open one."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.renderHeader(state),
		body,
		r.renderStatus(state),
		r.renderHelp(state),
	)
}

func (r *Renderer) renderHeader(state ViewState) string {
	title := r.styles.Title.Render("pixview")
	if state.Path == "" {
		return title
	}

	info := fmt.Sprintf("%dx%d  %.0f%%  %s", state.ImageWidth, state.ImageHeight, state.Zoom*100, state.Background)
	header := fmt.Sprintf("%s %s  %s", title, filepath.Base(state.Path), r.styles.Info.Render(info))
	return truncate(header, state.Width)
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.TextInput != "" {
		return truncate(r.styles.Prompt.Render(state.Prompt)+state.TextInput, state.Width)
	}

	nav := r.navIndicator("◀ prev", state.HasPrev) + " " + r.navIndicator("next ▶", state.HasNext)
	if state.StatusMessage == "" {
		return nav
	}

	style := r.styles.StatusSuccess
	if state.StatusIsError {
		style = r.styles.StatusError
	}
	return truncate(nav+"  "+style.Render(state.StatusMessage), state.Width)
}

func (r *Renderer) navIndicator(label string, enabled bool) string {
	if enabled {
		return r.styles.Status.Render(label)
	}
	return r.styles.Disabled.Render(label)
}

func (r *Renderer) renderHelp(state ViewState) string {
	if state.Keys == nil {
		return ""
	}
	h := state.HelpModel
	h.Width = state.Width
	return r.styles.Help.Render(h.View(state.Keys))
}

// truncate cuts s to width cells, keeping styles intact
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return strings.TrimRight(lipgloss.NewStyle().MaxWidth(width).Render(s), " ")
}
