package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the viewer's key bindings. It implements help.KeyMap.
type KeyMap struct {
	Next       key.Binding
	Previous   key.Binding
	Fit        key.Binding
	Actual     key.Binding
	Background key.Binding
	Open       key.Binding
	Info       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "prev"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit"),
		),
		Actual: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "1:1"),
		),
		Background: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "background"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Fit, k.Actual, k.Background, k.Open, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped in columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Previous, k.Next, k.Open},
		{k.Fit, k.Actual, k.Background},
		{k.Info, k.Help, k.Quit},
	}
}
