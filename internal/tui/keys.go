package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
// Help text doubles as the hint shown in the bottom bar.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	TagLeft  key.Binding
	TagRight key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Select   key.Binding
	Yank     key.Binding
	Open     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Edit     key.Binding
	Filter   key.Binding
	Refresh  key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func binding(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       binding("k", "up", "k", "up"),
		Down:     binding("j", "down", "j", "down"),
		TagLeft:  binding("h", "prev tag", "h", "left"),
		TagRight: binding("l", "next tag", "l", "right"),
		Top:      binding("gg", "top", "g"),
		Bottom:   binding("G", "bottom", "G"),
		Select:   binding("Enter", "filter tag", "enter"),
		Yank:     binding("y", "copy", "y"),
		Open:     binding("o", "open", "o"),
		Add:      binding("a", "add", "a"),
		Delete:   binding("d", "del", "d"),
		Edit:     binding("e", "edit", "e"),
		Filter:   binding("/", "filter", "/"),
		Refresh:  binding("R", "refresh", "R"),
		Cancel:   binding("Esc", "cancel", "esc"),
		Quit:     binding("q", "quit", "q", "ctrl+c"),
	}
}
