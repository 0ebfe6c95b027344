package terminal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Remove key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Next, keys.Add, keys.Edit, keys.Toggle, keys.Remove, keys.Quit}
}

func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keys.ShortHelp(), {keys.Up, keys.Down}}
}
