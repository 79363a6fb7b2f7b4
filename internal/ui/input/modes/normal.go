package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pixview/internal/domain"
	"pixview/internal/ui/input/types"
)

// Keys are the bindings NormalMode reacts to
type Keys struct {
	Next, Previous, Fit, Actual, Background, Open, Info, Help, Quit key.Binding
}

type NormalMode struct {
	keys Keys
}

func NewNormalMode(keys Keys) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter() []types.Action {
	return nil
}

func (m *NormalMode) Exit() []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Next):
		return []types.Action{types.NavigateAction{Direction: domain.DirectionNext}}, true
	case key.Matches(msg, m.keys.Previous):
		return []types.Action{types.NavigateAction{Direction: domain.DirectionPrevious}}, true
	case key.Matches(msg, m.keys.Fit):
		return []types.Action{types.ZoomToFitAction{}}, true
	case key.Matches(msg, m.keys.Actual):
		return []types.Action{types.ZoomToActualAction{}}, true
	case key.Matches(msg, m.keys.Background):
		return []types.Action{types.ToggleBackgroundAction{}}, true
	case key.Matches(msg, m.keys.Open):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOpen}}, true
	case key.Matches(msg, m.keys.Info):
		return []types.Action{types.ShowInfoAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	}
	return nil, false
}
