package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/shazow/weefee/internal/app"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		kind app.ModalKind
		key  tea.KeyMsg
		want app.Msg
	}{
		{"browse up", app.KindBrowsing, tea.KeyMsg{Type: tea.KeyUp}, app.MoveUp{}},
		{"browse k", app.KindBrowsing, runes("k"), app.MoveUp{}},
		{"browse down", app.KindBrowsing, tea.KeyMsg{Type: tea.KeyDown}, app.MoveDown{}},
		{"browse j", app.KindBrowsing, runes("j"), app.MoveDown{}},
		{"browse enter", app.KindBrowsing, tea.KeyMsg{Type: tea.KeyEnter}, app.Select{}},
		{"browse forget", app.KindBrowsing, runes("f"), app.RequestForget{}},
		{"browse autoconnect", app.KindBrowsing, runes("a"), app.ToggleAutoConnect{}},
		{"browse autoconnect upper", app.KindBrowsing, runes("A"), app.ToggleAutoConnect{}},
		{"browse details", app.KindBrowsing, runes("d"), app.ToggleDetails{}},
		{"browse rescan", app.KindBrowsing, runes("r"), app.Rescan{}},
		{"browse q", app.KindBrowsing, runes("q"), app.Quit{}},
		{"browse ctrl+c", app.KindBrowsing, tea.KeyMsg{Type: tea.KeyCtrlC}, app.Quit{}},

		{"password rune", app.KindEnteringPassword, runes("q"), app.InsertRunes{Runes: []rune("q")}},
		{"password j is text", app.KindEnteringPassword, runes("j"), app.InsertRunes{Runes: []rune("j")}},
		{"password paste", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hunter2"), Paste: true}, app.InsertRunes{Runes: []rune("hunter2")}},
		{"password space", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, app.InsertRunes{Runes: []rune{' '}}},
		{"password backspace", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyBackspace}, app.Backspace{}},
		{"password left", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyLeft}, app.CursorLeft{}},
		{"password right", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyRight}, app.CursorRight{}},
		{"password ctrl+left", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyCtrlLeft}, app.WordLeft{}},
		{"password alt+left", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyLeft, Alt: true}, app.WordLeft{}},
		{"password ctrl+right", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyCtrlRight}, app.WordRight{}},
		{"password alt+right", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyRight, Alt: true}, app.WordRight{}},
		{"password ctrl+w", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyCtrlW}, app.DeleteWord{}},
		{"password ctrl+h", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyCtrlH}, app.DeleteWord{}},
		{"password alt+backspace", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyBackspace, Alt: true}, app.DeleteWord{}},
		{"password enter", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyEnter}, app.Submit{}},
		{"password esc", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyEsc}, app.Cancel{}},
		{"password ctrl+c", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyCtrlC}, app.Quit{}},

		{"confirm y", app.KindConfirmingForget, runes("y"), app.Submit{}},
		{"confirm Y", app.KindConfirmingDisconnect, runes("Y"), app.Submit{}},
		{"confirm enter", app.KindConfirmingWeakSecurity, tea.KeyMsg{Type: tea.KeyEnter}, app.Submit{}},
		{"confirm n", app.KindConfirmingForget, runes("n"), app.Cancel{}},
		{"confirm N", app.KindConfirmingWeakSecurity, runes("N"), app.Cancel{}},
		{"confirm esc", app.KindConfirmingDisconnect, tea.KeyMsg{Type: tea.KeyEsc}, app.Cancel{}},
		{"confirm ctrl+c", app.KindConfirmingForget, tea.KeyMsg{Type: tea.KeyCtrlC}, app.Quit{}},

		{"error enter", app.KindShowingError, tea.KeyMsg{Type: tea.KeyEnter}, app.Cancel{}},
		{"error esc", app.KindShowingError, tea.KeyMsg{Type: tea.KeyEsc}, app.Cancel{}},
		{"error ctrl+c", app.KindShowingError, tea.KeyMsg{Type: tea.KeyCtrlC}, app.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.kind, tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateKeyIgnored(t *testing.T) {
	tests := []struct {
		name string
		kind app.ModalKind
		key  tea.KeyMsg
	}{
		{"browse unbound", app.KindBrowsing, runes("x")},
		{"confirm q", app.KindConfirmingForget, runes("q")},
		{"error q", app.KindShowingError, runes("q")},
		{"error y", app.KindShowingError, runes("y")},
		{"password alt rune", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}},
		{"password tab", app.KindEnteringPassword, tea.KeyMsg{Type: tea.KeyTab}},
		{"quitting", app.KindQuitting, tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := translateKey(tt.kind, tt.key)
			assert.False(t, ok)
		})
	}
}

func TestTranslateKeyWhileConnecting(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		runes("q"),
		runes("y"),
		tea.KeyMsg{Type: tea.KeyCtrlC},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEsc},
		tea.KeyMsg{Type: tea.KeyDown},
	} {
		_, ok := translateKey(app.KindConnecting, key)
		assert.False(t, ok, "key %q", key.String())
	}
}

func TestHelpFor(t *testing.T) {
	assert.NotNil(t, helpFor(app.KindBrowsing))
	assert.NotNil(t, helpFor(app.KindEnteringPassword))
	assert.NotNil(t, helpFor(app.KindConfirmingForget))
	assert.NotNil(t, helpFor(app.KindShowingError))
	assert.Nil(t, helpFor(app.KindConnecting))
	assert.Nil(t, helpFor(app.KindQuitting))
}
