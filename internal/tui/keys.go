package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/myreads/internal/domain"
)

// KeyMap defines all key bindings
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Shelving
	ToCurrentlyReading key.Binding
	ToWantToRead       key.Binding
	ToRead             key.Binding
	ToNone             key.Binding

	// Actions
	Search key.Binding
	Filter key.Binding
	Reload key.Binding
	Focus  key.Binding
	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "right", "tab"),
			key.WithHelp("l/→", "next shelf"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left", "shift+tab"),
			key.WithHelp("h/←", "prev shelf"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),

		ToCurrentlyReading: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "reading"),
		),
		ToWantToRead: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "want"),
		),
		ToRead: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "read"),
		),
		ToNone: key.NewBinding(
			key.WithKeys("4", "x"),
			key.WithHelp("4", "none"),
		),

		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToCurrentlyReading, k.ToWantToRead, k.ToRead, k.ToNone, k.Search, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.NextTab, k.PrevTab, k.Focus, k.Escape},
		{k.ToCurrentlyReading, k.ToWantToRead, k.ToRead, k.ToNone},
		{k.Search, k.Filter, k.Reload, k.Help, k.Quit},
	}
}

// shelfFor maps a shelving key to its target shelf
func (k KeyMap) shelfFor(msg tea.KeyMsg) (domain.Shelf, bool) {
	switch {
	case key.Matches(msg, k.ToCurrentlyReading):
		return domain.ShelfCurrentlyReading, true
	case key.Matches(msg, k.ToWantToRead):
		return domain.ShelfWantToRead, true
	case key.Matches(msg, k.ToRead):
		return domain.ShelfRead, true
	case key.Matches(msg, k.ToNone):
		return domain.ShelfNone, true
	}
	return domain.ShelfNone, false
}
