package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Filter    key.Binding
	GameOnly  key.Binding
	NextWorld key.Binding
	Apply     key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "show/hide category"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		GameOnly: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "game only"),
		),
		NextWorld: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "next world"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FilterKeyMap returns keybindings active while the filter input has focus.
// Letter shortcuts are disabled so they reach the input.
func FilterKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Up.SetKeys("up")
	km.Down.SetKeys("down")
	km.Toggle.SetEnabled(false)
	km.Filter.SetEnabled(false)
	km.GameOnly.SetEnabled(false)
	km.NextWorld.SetEnabled(false)
	km.Quit.SetKeys("ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")
	return km
}
