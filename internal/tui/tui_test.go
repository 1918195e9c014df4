package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/weefee/internal/app"
	"github.com/shazow/weefee/internal/worker"
	"github.com/shazow/weefee/wifi"
	"github.com/shazow/weefee/wifi/mock"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestModelForwardsKeysByModal(t *testing.T) {
	var kind atomic.Int32
	inbox := make(chan app.Msg, 4)
	m := newModel(&kind, inbox, discard())

	m.Update(runes("j"))
	assert.Equal(t, app.MoveDown{}, <-inbox)

	kind.Store(int32(app.KindEnteringPassword))
	m.Update(runes("j"))
	assert.Equal(t, app.InsertRunes{Runes: []rune("j")}, <-inbox)

	kind.Store(int32(app.KindConnecting))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Len(t, inbox, 0)
}

func TestModelDropsInputWhenInboxFull(t *testing.T) {
	var kind atomic.Int32
	inbox := make(chan app.Msg, 1)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newModel(&kind, inbox, logger)

	m.Update(runes("j"))
	m.Update(runes("k"))
	assert.Len(t, inbox, 1)
	assert.Equal(t, app.MoveDown{}, <-inbox)
	assert.Contains(t, logs.String(), "input dropped")
}

func TestModelTick(t *testing.T) {
	var kind atomic.Int32
	inbox := make(chan app.Msg, 1)
	m := newModel(&kind, inbox, discard())

	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd, "tick should reschedule itself")
	assert.Equal(t, app.Tick{}, <-inbox)
	assert.NotNil(t, m.Init())
}

func TestModelDrawsPublishedState(t *testing.T) {
	var kind atomic.Int32
	m := newModel(&kind, make(chan app.Msg, 1), discard())

	assert.Contains(t, m.View(), "WeeFee | Loading...")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated, cmd := updated.Update(stateMsg{fixtureState(app.Browsing{})})
	assert.Nil(t, cmd)
	assert.Contains(t, updated.View(), "WeeFee | WiFi enabled, connected")
	assert.Contains(t, updated.View(), "Cafe")

	_, cmd = updated.Update(stateMsg{app.Quitting{}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// harness runs a loop and worker against a client, collecting published
// states.
type harness struct {
	t      *testing.T
	loop   *loop
	states chan app.State
	done   chan struct{}
}

func newHarness(t *testing.T, factory worker.Factory) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	w := worker.New(factory, discard(), 0)
	h := &harness{
		t:      t,
		loop:   newLoop(w, discard()),
		states: make(chan app.State, 64),
		done:   make(chan struct{}),
	}
	h.loop.publish = func(s app.State) {
		select {
		case h.states <- s:
		case <-ctx.Done():
		}
	}

	go w.Run(ctx)
	go func() {
		h.loop.run(ctx)
		close(h.done)
	}()
	t.Cleanup(func() {
		cancel()
		<-h.done
		<-w.Done()
	})
	return h
}

func newMock() *mock.Client {
	m := mock.New()
	m.ActionSleep = 0
	m.Jitter = false
	return m
}

func (h *harness) send(msg app.Msg) {
	h.loop.inbox <- msg
}

// waitFor returns the first published state matching ok.
func (h *harness) waitFor(desc string, ok func(app.Active) bool) app.Active {
	h.t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-h.states:
			if a, isActive := s.(app.Active); isActive && ok(a) {
				return a
			}
		case <-timeout:
			h.t.Fatalf("timed out waiting for %s", desc)
			return app.Active{}
		}
	}
}

func TestLoopConnectFlow(t *testing.T) {
	h := newHarness(t, func() (wifi.Client, error) { return newMock(), nil })

	a := h.waitFor("networks", func(a app.Active) bool { return len(a.Networks) > 0 && a.Device != nil })
	require.Equal(t, "TacoBoutAGoodSignal", a.Networks[0].SSID)
	assert.Equal(t, 0, a.Selected)

	h.send(app.Select{})
	h.waitFor("password prompt", func(a app.Active) bool { return app.KindOf(a) == app.KindEnteringPassword })
	assert.Equal(t, int32(app.KindEnteringPassword), h.loop.kind.Load())

	h.send(app.InsertRunes{Runes: []rune("nope")})
	h.send(app.Submit{})
	h.waitFor("password error", func(a app.Active) bool {
		p, ok := a.Modal.(app.EnteringPassword)
		return ok && p.Err != ""
	})

	h.send(app.InsertRunes{Runes: []rune("tacotuesday")})
	h.send(app.Submit{})
	h.waitFor("connecting", func(a app.Active) bool { return app.KindOf(a) == app.KindConnecting })

	a = h.waitFor("connected", func(a app.Active) bool {
		return app.KindOf(a) == app.KindBrowsing && len(a.Networks) > 0 && a.Networks[0].IsActive
	})
	assert.Equal(t, "TacoBoutAGoodSignal", a.Networks[0].SSID)
	assert.True(t, a.Networks[0].IsKnown)
}

func TestLoopForget(t *testing.T) {
	client := newMock()
	client.ActiveSSID = "HideYoKidsHideYoWiFi"
	h := newHarness(t, func() (wifi.Client, error) { return client, nil })

	h.waitFor("networks", func(a app.Active) bool { return len(a.Networks) > 0 })
	h.send(app.RequestForget{})
	h.waitFor("confirmation", func(a app.Active) bool { return app.KindOf(a) == app.KindConfirmingForget })
	h.send(app.Submit{})

	a := h.waitFor("forgotten", func(a app.Active) bool {
		for _, n := range a.Networks {
			if n.SSID == "HideYoKidsHideYoWiFi" {
				return !n.IsKnown && !n.IsActive
			}
		}
		return false
	})
	assert.Equal(t, app.KindBrowsing, app.KindOf(a))
	assert.Contains(t, client.Calls(), "forget:HideYoKidsHideYoWiFi")
}

func TestLoopQuit(t *testing.T) {
	h := newHarness(t, func() (wifi.Client, error) { return newMock(), nil })

	h.send(app.Quit{})
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after quit")
	}
	assert.Equal(t, int32(app.KindQuitting), h.loop.kind.Load())

	var last app.State
	for len(h.states) > 0 {
		last = <-h.states
	}
	assert.Equal(t, app.Quitting{}, last)
}

func TestLoopClientUnavailable(t *testing.T) {
	h := newHarness(t, func() (wifi.Client, error) {
		return nil, errors.New("dbus: connection refused")
	})

	a := h.waitFor("error", func(a app.Active) bool { return app.KindOf(a) == app.KindShowingError })
	assert.True(t, strings.Contains(a.Modal.(app.ShowingError).Message, "connection refused"))

	// The loop keeps serving input after the worker is gone.
	h.send(app.Cancel{})
	h.waitFor("browsing", func(a app.Active) bool { return app.KindOf(a) == app.KindBrowsing })
}

// stuckClient blocks every autoconnect toggle until release is closed.
type stuckClient struct {
	*mock.Client
	release chan struct{}
}

func (c *stuckClient) ToggleAutoConnect(ssid string) error {
	<-c.release
	return c.Client.ToggleAutoConnect(ssid)
}

func TestLoopDroppedCommands(t *testing.T) {
	client := &stuckClient{Client: newMock(), release: make(chan struct{})}
	h := newHarness(t, func() (wifi.Client, error) { return client, nil })
	t.Cleanup(func() { close(client.release) })

	a := h.waitFor("networks", func(a app.Active) bool { return len(a.Networks) > 0 && a.Device != nil })
	require.Equal(t, "TacoBoutAGoodSignal", a.Networks[0].SSID)
	known := -1
	for i, n := range a.Networks {
		if n.IsKnown {
			known = i
			break
		}
	}
	require.Greater(t, known, 0)

	h.send(app.ToggleDetails{})
	for i := 0; i < known; i++ {
		h.send(app.MoveDown{})
	}
	// The first toggle occupies the worker, the rest fill the queue and
	// then overflow it.
	for i := 0; i < worker.DefaultQueueSize+4; i++ {
		h.send(app.ToggleAutoConnect{})
	}
	a = h.waitFor("busy error", func(a app.Active) bool { return app.KindOf(a) == app.KindShowingError })
	assert.Contains(t, a.Modal.(app.ShowingError).Message, worker.ErrBusy.Error())

	h.send(app.Cancel{})
	for i := 0; i < known; i++ {
		h.send(app.MoveUp{})
	}
	h.send(app.Select{})
	h.waitFor("password prompt", func(a app.Active) bool { return app.KindOf(a) == app.KindEnteringPassword })
	h.send(app.InsertRunes{Runes: []rune("tacotuesday")})
	h.send(app.Submit{})

	a = h.waitFor("connect refused", func(a app.Active) bool {
		e, ok := a.Modal.(app.ShowingError)
		return ok && strings.Contains(e.Message, "Connection failed")
	})
	assert.Contains(t, a.Modal.(app.ShowingError).Message, worker.ErrBusy.Error())

	// The error dialog still takes keys.
	_, ok := translateKey(app.ModalKind(h.loop.kind.Load()), tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, ok)
	for _, call := range client.Calls() {
		assert.False(t, strings.HasPrefix(call, "connect:"), "unexpected %s", call)
	}
}
