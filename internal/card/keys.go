package card

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Open     key.Binding
	Save     key.Binding
	Delete   key.Binding
	Download key.Binding
	Close    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Dismiss  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "edit")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Delete:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Download: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "download")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l", " ")),
		Dismiss:  key.NewBinding(key.WithKeys("enter", " ", "esc"), key.WithHelp("enter", "ok")),
	}
}

// ShortHelp implements help.KeyMap for the overlay footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Delete, k.Download, k.Next, k.Close}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
