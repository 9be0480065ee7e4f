package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Up      key.Binding
	Down    key.Binding
	Today   key.Binding
	Reload  key.Binding
	Diff    key.Binding
	Collect key.Binding
	Force   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h/p", "prev day")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l/n", "next day")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Diff:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle diff")),
		Collect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collect")),
		Force:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "re-sort")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Collect, k.Diff, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today, k.Reload},
		{k.Up, k.Down, k.Diff},
		{k.Collect, k.Force, k.Help, k.Quit},
	}
}
