package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pixview/internal/ui/input/modes"
	"pixview/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
	keys        KeyMap
}

func New(keys KeyMap) *Handler {
	ti := textinput.New()
	ti.Placeholder = "path/to/image.png"
	ti.CharLimit = 4096

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode(modes.Keys{
		Next:       keys.Next,
		Previous:   keys.Previous,
		Fit:        keys.Fit,
		Actual:     keys.Actual,
		Background: keys.Background,
		Open:       keys.Open,
		Info:       keys.Info,
		Help:       keys.Help,
		Quit:       keys.Quit,
	})
	h.modes[types.ModeOpen] = modes.NewOpenMode(h.textInput)

	return h
}

// HandleKey routes a key to the current mode and applies mode changes.
// Keys a text mode does not consume go to the text input.
func (h *Handler) HandleKey(msg tea.KeyMsg) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg)
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		if current := h.modes[h.currentMode]; current != nil {
			allActions = append(allActions, current.Exit()...)
		}
		h.currentMode = changeMode.Mode
		if next := h.modes[h.currentMode]; next != nil {
			allActions = append(allActions, next.Enter()...)
		}
		if h.isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	if h.isTextMode(h.currentMode) && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// TextInput returns the text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// Prompt returns the label of the active text mode
func (h *Handler) Prompt() string {
	if m, ok := h.modes[h.currentMode].(interface{ Prompt() string }); ok {
		return m.Prompt()
	}
	return ""
}

// Keys returns the key bindings
func (h *Handler) Keys() KeyMap {
	return h.keys
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeOpen
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
