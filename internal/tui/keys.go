package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Prev         key.Binding
	Next         key.Binding
	First        key.Binding
	Last         key.Binding
	Classify     key.Binding
	PickCategory key.Binding
	Jump         key.Binding
	Undo         key.Binding
	AddCategory  key.Binding
	YankPath     key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("h", "left", "k", "up"),
			key.WithHelp("h/left", "previous image"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right", "j", "down"),
			key.WithHelp("l/right", "next image"),
		),
		First: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "first image"),
		),
		Last: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last image"),
		),
		Classify: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "classify"),
		),
		PickCategory: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "pick category"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump to image"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		AddCategory: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add category"),
		),
		YankPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank path"),
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
