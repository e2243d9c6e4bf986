package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Choose    key.Binding
	Move      key.Binding
	Confirm   key.Binding
	Skip      key.Binding
	Restart   key.Binding
	Audio     key.Binding
	Completed key.Binding
	Chapters  key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "choose"),
		),
		Move: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "move"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "pick"),
		),
		Skip: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "skip"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		Audio: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "listen"),
		),
		Completed: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "completed"),
		),
		Chapters: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("c", "chapters"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Move, k.Skip, k.Restart, k.Audio, k.Completed, k.Chapters, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
