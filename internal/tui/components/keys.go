package components

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings shown in the footer for each mode. Input is
// interpreted by the state machine; these only describe it.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Fetch  key.Binding
	Add    key.Binding
	Delete key.Binding
	Quit   key.Binding

	Select  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Exit    key.Binding
}

// Keys is the application key map.
var Keys = KeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Fetch:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

	Select:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "pick result")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Exit:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "exit")),
}

// NormalHelp is shown on the dashboard.
func (k KeyMap) NormalHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Fetch, k.Add, k.Delete, k.Quit}
}

// SymbolHelp is shown while adding a symbol.
func (k KeyMap) SymbolHelp() []key.Binding {
	return []key.Binding{k.Select, k.Confirm, k.Cancel}
}

// APIKeyHelp is shown while entering the API key.
func (k KeyMap) APIKeyHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Exit}
}
