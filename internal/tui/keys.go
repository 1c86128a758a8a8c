package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Favorite key.Binding
	Search   key.Binding
	Sort     key.Binding
	Reverse  key.Binding
	Recent   key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Refresh  key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add project")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Sort:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort column")),
	Reverse:  key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "reverse sort")),
	Recent:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recent mode")),
	Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Refresh:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
}
