package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pixview/internal/ui/input/types"
)

// TextInputMode is a base for modes that accept text input
type TextInputMode struct {
	mode      types.Mode
	name      string
	prompt    string
	textInput *textinput.Model
}

func NewTextInputMode(mode types.Mode, name, prompt string, ti *textinput.Model) TextInputMode {
	return TextInputMode{
		mode:      mode,
		name:      name,
		prompt:    prompt,
		textInput: ti,
	}
}

func (m TextInputMode) Name() string {
	return m.name
}

// Prompt returns the label shown before the input
func (m TextInputMode) Prompt() string {
	return m.prompt
}

func (m TextInputMode) Enter() []types.Action {
	if m.textInput != nil {
		m.textInput.Reset()
		m.textInput.Focus()
		m.textInput.Prompt = "" // Prompt is handled in the UI layer
	}
	return nil
}

func (m TextInputMode) Exit() []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	return nil
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		text := ""
		if m.textInput != nil {
			text = m.textInput.Value()
		}
		return []types.Action{
			types.SubmitTextAction{Text: text, Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	default:
		// Returning false lets the handler feed the key to the text input
		return nil, false
	}
}
