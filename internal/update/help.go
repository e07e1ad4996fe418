package update

import (
	"github.com/charmbracelet/bubbles/key"
)

// helpKeyMap adapts the per-view bindings to the bubbles help component.
type helpKeyMap struct {
	bindings []key.Binding
}

func (h helpKeyMap) ShortHelp() []key.Binding {
	return h.bindings
}

func (h helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.bindings}
}

var globalBindings = []key.Binding{
	key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "active")),
	key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
	key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "notes")),
	key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
	key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func (m Model) helpBindings() []key.Binding {
	bindings := make([]key.Binding, 0, len(globalBindings)+8)
	bindings = append(bindings, globalBindings...)
	switch m.CurrentView {
	case ViewActive:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
			key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "track")),
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
			key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "progress")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "memo")),
		)
	case ViewCompleted:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		)
	case ViewNotes:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		)
	}
	return bindings
}

func (m Model) viewBindings() []string {
	lines := make([]string, 0, 12)
	for _, b := range m.helpBindings() {
		lines = append(lines, b.Help().Key+": "+b.Help().Desc)
	}
	return lines
}
