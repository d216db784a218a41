package live

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the live UI key bindings.
type keyMap struct {
	Choose  key.Binding
	Advance key.Binding
	End     key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "answer"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("enter", "next"),
		),
		End: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end quiz"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Advance, k.End, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// syncKeys enables only the bindings that apply to the current state.
func syncKeys(keys keyMap, state State) keyMap {
	keys.Choose.SetEnabled(state.CanAnswer())
	keys.Advance.SetEnabled(state.CanAdvance())
	keys.End.SetEnabled(state.Phase == PhaseQuestion || state.Phase == PhaseEmpty)
	keys.Restart.SetEnabled(state.Phase != PhaseLoading)
	return keys
}
