package ui

import (
	"pixview/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// openMsg asks the model to load an image
type openMsg struct {
	path string
}

// pagerMsg reports that an external pager has exited
type pagerMsg struct {
	kind string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
