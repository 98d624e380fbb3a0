package viewer

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Refresh   key.Binding
	Up        key.Binding
	Down      key.Binding
	Dismiss   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5", "ctrl+r"),
			key.WithHelp("r", "刷新列表"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "上移"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "下移"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "确定"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "退出"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dialogKeys is what the help line shows while the error dialog is open
type dialogKeys struct {
	dismiss key.Binding
}

func (k dialogKeys) ShortHelp() []key.Binding  { return []key.Binding{k.dismiss} }
func (k dialogKeys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.dismiss}} }
