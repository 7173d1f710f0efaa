package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains all keyboard shortcuts for the branch view
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	OpenBranch  key.Binding
	OpenDefault key.Binding
	Refresh     key.Binding
	CleanCache  key.Binding
	Quit        key.Binding
}

// NewKeyMap creates a KeyMap with the default bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		OpenBranch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open branch"),
		),
		OpenDefault: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "open default branch"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		CleanCache: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "clean cache"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenBranch, k.OpenDefault, k.Refresh, k.CleanCache, k.Quit}
}
