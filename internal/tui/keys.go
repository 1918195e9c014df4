package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shazow/weefee/internal/app"
)

// browseKeyMap is active while browsing the network list.
type browseKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Connect     key.Binding
	Forget      key.Binding
	AutoConnect key.Binding
	Details     key.Binding
	Rescan      key.Binding
	Quit        key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Connect, k.Forget, k.Details, k.AutoConnect, k.Rescan, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// passwordKeyMap is active in the password prompt. Printable runes that
// match no binding are inserted.
type passwordKeyMap struct {
	Submit     key.Binding
	Cancel     key.Binding
	Left       key.Binding
	Right      key.Binding
	WordLeft   key.Binding
	WordRight  key.Binding
	Backspace  key.Binding
	DeleteWord key.Binding
	Quit       key.Binding
}

func (k passwordKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.DeleteWord, k.Quit}
}

func (k passwordKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Left, k.Right, k.WordLeft, k.WordRight, k.Backspace}}
}

// confirmKeyMap is active in yes/no dialogs.
type confirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Quit}
}

func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// errorKeyMap is active while an error is shown.
type errorKeyMap struct {
	Dismiss key.Binding
	Quit    key.Binding
}

func (k errorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Quit}
}

func (k errorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Connect: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "dis/connect"),
	),
	Forget: key.NewBinding(
		key.WithKeys("f", "F"),
		key.WithHelp("f", "forget"),
	),
	AutoConnect: key.NewBinding(
		key.WithKeys("a", "A"),
		key.WithHelp("a", "auto-connect"),
	),
	Details: key.NewBinding(
		key.WithKeys("d", "D"),
		key.WithHelp("d", "details"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("r", "R"),
		key.WithHelp("r", "rescan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var passwordKeys = passwordKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "connect"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "right"),
	),
	WordLeft: key.NewBinding(
		key.WithKeys("ctrl+left", "alt+left", "alt+b"),
		key.WithHelp("ctrl+←", "word left"),
	),
	WordRight: key.NewBinding(
		key.WithKeys("ctrl+right", "alt+right", "alt+f"),
		key.WithHelp("ctrl+→", "word right"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "delete"),
	),
	DeleteWord: key.NewBinding(
		key.WithKeys("ctrl+w", "ctrl+h", "alt+backspace"),
		key.WithHelp("ctrl+w", "delete word"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

var confirmKeys = confirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("y", "yes"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "no"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

var errorKeys = errorKeyMap{
	Dismiss: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("enter/esc", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// translateKey maps a key press to a state machine message for the given
// modal. Keys are dropped entirely while connecting.
func translateKey(kind app.ModalKind, msg tea.KeyMsg) (app.Msg, bool) {
	switch kind {
	case app.KindBrowsing:
		k := browseKeys
		switch {
		case key.Matches(msg, k.Quit):
			return app.Quit{}, true
		case key.Matches(msg, k.Up):
			return app.MoveUp{}, true
		case key.Matches(msg, k.Down):
			return app.MoveDown{}, true
		case key.Matches(msg, k.Connect):
			return app.Select{}, true
		case key.Matches(msg, k.Forget):
			return app.RequestForget{}, true
		case key.Matches(msg, k.AutoConnect):
			return app.ToggleAutoConnect{}, true
		case key.Matches(msg, k.Details):
			return app.ToggleDetails{}, true
		case key.Matches(msg, k.Rescan):
			return app.Rescan{}, true
		}

	case app.KindEnteringPassword:
		k := passwordKeys
		switch {
		case key.Matches(msg, k.Quit):
			return app.Quit{}, true
		case key.Matches(msg, k.Submit):
			return app.Submit{}, true
		case key.Matches(msg, k.Cancel):
			return app.Cancel{}, true
		case key.Matches(msg, k.WordLeft):
			return app.WordLeft{}, true
		case key.Matches(msg, k.WordRight):
			return app.WordRight{}, true
		case key.Matches(msg, k.Left):
			return app.CursorLeft{}, true
		case key.Matches(msg, k.Right):
			return app.CursorRight{}, true
		case key.Matches(msg, k.DeleteWord):
			return app.DeleteWord{}, true
		case key.Matches(msg, k.Backspace):
			return app.Backspace{}, true
		}
		switch msg.Type {
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return nil, false
			}
			return app.InsertRunes{Runes: append([]rune(nil), msg.Runes...)}, true
		case tea.KeySpace:
			return app.InsertRunes{Runes: []rune{' '}}, true
		}

	case app.KindConfirmingDisconnect, app.KindConfirmingForget, app.KindConfirmingWeakSecurity:
		k := confirmKeys
		switch {
		case key.Matches(msg, k.Quit):
			return app.Quit{}, true
		case key.Matches(msg, k.Confirm):
			return app.Submit{}, true
		case key.Matches(msg, k.Cancel):
			return app.Cancel{}, true
		}

	case app.KindShowingError:
		k := errorKeys
		switch {
		case key.Matches(msg, k.Quit):
			return app.Quit{}, true
		case key.Matches(msg, k.Dismiss):
			return app.Cancel{}, true
		}
	}
	return nil, false
}

// helpFor returns the bindings to show in the footer, or nil.
func helpFor(kind app.ModalKind) help.KeyMap {
	switch kind {
	case app.KindBrowsing:
		return browseKeys
	case app.KindEnteringPassword:
		return passwordKeys
	case app.KindConfirmingDisconnect, app.KindConfirmingForget, app.KindConfirmingWeakSecurity:
		return confirmKeys
	case app.KindShowingError:
		return errorKeys
	}
	return nil
}
