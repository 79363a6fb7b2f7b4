package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventImageLoaded       EventType = "ImageLoaded"
	EventImageLoadFailed   EventType = "ImageLoadFailed"
	EventNavigated         EventType = "Navigated"
	EventBackgroundToggled EventType = "BackgroundToggled"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
	EventConfigChanged     EventType = "ConfigChanged"
	EventAppReady          EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ImageLoadedEvent is emitted after an image replaced the current one
type ImageLoadedEvent struct {
	Path   string
	Format string
	Width  int
	Height int
}

func (e ImageLoadedEvent) Type() EventType { return EventImageLoaded }

// ImageLoadFailedEvent is emitted when a load left the previous image in place
type ImageLoadFailedEvent struct {
	Path string
	Err  error
}

func (e ImageLoadFailedEvent) Type() EventType { return EventImageLoadFailed }

// NavigatedEvent is emitted when the viewer stepped to a sibling image
type NavigatedEvent struct {
	From      string
	To        string
	Direction Direction
}

func (e NavigatedEvent) Type() EventType { return EventNavigated }

// BackgroundToggledEvent is emitted when the canvas background changes.
// Seq counts toggles from 1 in the order they happened.
type BackgroundToggledEvent struct {
	Background Background
	Seq        uint64
}

func (e BackgroundToggledEvent) Type() EventType { return EventBackgroundToggled }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path       string
	Extensions []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	DarkBackground bool
	Seq            uint64 // toggle the change comes from
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// AppReadyEvent is emitted when the viewer is initialized
type AppReadyEvent struct {
	HasExistingConfig bool
	InitialPath       string
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
