package tui

import (
	"outline-cli/internal/nav"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	Toggle   key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	Filter      key.Binding
	ClearFilter key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Detail      key.Binding
	HideOutline key.Binding
	Narrower    key.Binding
	Wider       key.Binding
	DetailDown  key.Binding
	DetailUp    key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse/parent")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand/child")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "open")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),

		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Detail:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "detail")),
		HideOutline: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "hide outline")),
		Narrower:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrower")),
		Wider:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "wider")),
		DetailDown:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "scroll detail")),
		DetailUp:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "scroll detail")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// navKey maps a key press onto the navigator's key set.
func (k keyMap) navKey(msg tea.KeyMsg) nav.Key {
	switch {
	case key.Matches(msg, k.Up):
		return nav.KeyUp
	case key.Matches(msg, k.Down):
		return nav.KeyDown
	case key.Matches(msg, k.Left):
		return nav.KeyLeft
	case key.Matches(msg, k.Right):
		return nav.KeyRight
	case key.Matches(msg, k.Activate):
		return nav.KeyEnter
	case key.Matches(msg, k.Toggle):
		return nav.KeySpace
	case key.Matches(msg, k.Home):
		return nav.KeyHome
	case key.Matches(msg, k.End):
		return nav.KeyEnd
	case key.Matches(msg, k.PageUp):
		return nav.KeyPageUp
	case key.Matches(msg, k.PageDown):
		return nav.KeyPageDown
	default:
		return nav.KeyNone
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Activate, k.Filter, k.Detail, k.Quit}
}
