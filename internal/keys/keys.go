// Package keys contains keybinding definitions for every overlay.
package keys

import "github.com/charmbracelet/bubbles/key"

// ModalKeys drive the topmost modal.
type ModalKeys struct {
	Confirm    key.Binding
	Escape     key.Binding
	NextButton key.Binding
	PrevButton key.Binding
	Browse     key.Binding
}

// Modal holds the modal keybindings.
var Modal = ModalKeys{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "activate button"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	NextButton: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab/→", "next button"),
	),
	PrevButton: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab/←", "previous button"),
	),
	Browse: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "browse for the focused path"),
	),
}

// MenuKeys drive an open context menu.
type MenuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// Menu holds the context menu keybindings.
var Menu = MenuKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous item"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next item"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close menu"),
	),
}

// ScrollKeys move a scroll area.
type ScrollKeys struct {
	LineUp   key.Binding
	LineDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// Scroll holds the scroll area keybindings.
var Scroll = ScrollKeys{
	LineUp: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "scroll up"),
	),
	LineDown: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	),
}

// ShellKeys are the launcher list keybindings.
type ShellKeys struct {
	Up       key.Binding
	Down     key.Binding
	Launch   key.Binding
	ItemMenu key.Binding
	MainMenu key.Binding
	Settings key.Binding
	Scan     key.Binding
	Refresh  key.Binding
	Search   key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Logs     key.Binding
	Quit     key.Binding
}

// Shell holds the launcher keybindings.
var Shell = ShellKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Launch: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "launch"),
	),
	ItemMenu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "item menu"),
	),
	MainMenu: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "menu"),
	),
	Settings: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "settings"),
	),
	Scan: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "scan shortcuts"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload items"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter items"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss toasts"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns keybindings for the status line.
func (k ShellKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.ItemMenu, k.MainMenu, k.Help, k.Quit}
}

// FullHelp returns keybindings for the help modal.
func (k ShellKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Launch, k.Refresh, k.Search},
		{k.ItemMenu, k.MainMenu, k.Settings, k.Scan},
		{Scroll.PageUp, Scroll.PageDown, Scroll.Top, Scroll.Bottom},
		{k.Dismiss, k.Help, k.Logs, k.Quit},
	}
}
