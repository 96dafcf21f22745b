// ABOUTME: Key bindings for the TUI screens
// ABOUTME: Bindings double as the footer hints rendered by bubbles/help

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open      key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Feed      key.Binding
	Play      key.Binding
	Sleep     key.Binding
	Refresh   key.Binding
	Admin     key.Binding
	Mine      key.Binding
	Back      key.Binding
	Logout    key.Binding
	Register  key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Feed:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "feed")),
		Play:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Sleep:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sleep")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Admin:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "admin")),
		Mine:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my pets")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Register:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "register")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// hints returns the footer bindings for a screen.
func (k keyMap) hints(screen Screen, admin bool) []key.Binding {
	switch screen {
	case ScreenLogin:
		return []key.Binding{k.Submit, k.Register, k.ForceQuit}
	case ScreenRegister:
		return []key.Binding{k.Submit, k.Cancel, k.ForceQuit}
	case ScreenPets:
		b := []key.Binding{k.Open, k.Feed, k.Play, k.Sleep, k.New, k.Edit, k.Delete, k.Refresh}
		if admin {
			b = append(b, k.Admin)
		}
		return append(b, k.Logout, k.Quit)
	case ScreenDetail:
		return []key.Binding{k.Feed, k.Play, k.Sleep, k.Edit, k.Delete, k.Refresh, k.Back, k.Quit}
	case ScreenAdmin:
		return []key.Binding{k.Edit, k.Delete, k.Refresh, k.Mine, k.Logout, k.Quit}
	case ScreenForm, ScreenConfirm:
		return []key.Binding{k.Submit, k.Cancel, k.ForceQuit}
	default:
		return []key.Binding{k.ForceQuit}
	}
}
