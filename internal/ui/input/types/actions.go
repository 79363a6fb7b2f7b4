package types

import "pixview/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction domain.Direction
}

func (a NavigateAction) Type() string { return "navigate" }

// Zoom actions
type ZoomToFitAction struct{}

func (a ZoomToFitAction) Type() string { return "zoom_fit" }

type ZoomToActualAction struct{}

func (a ZoomToActualAction) Type() string { return "zoom_actual" }

type ToggleBackgroundAction struct{}

func (a ToggleBackgroundAction) Type() string { return "toggle_background" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Pager actions
type ShowInfoAction struct{}

func (a ShowInfoAction) Type() string { return "show_info" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
