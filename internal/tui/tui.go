// Package tui runs the terminal interface. The bubbletea program reads keys
// and draws snapshots, a loop goroutine owns the application state, and a
// worker goroutine owns the network client.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shazow/weefee/internal/app"
	"github.com/shazow/weefee/internal/worker"
)

const (
	// DefaultScanInterval is how often the network list is refreshed.
	DefaultScanInterval = time.Second

	tickInterval = 200 * time.Millisecond
	inboxSize    = 32
)

// Options configures Run.
type Options struct {
	ScanInterval time.Duration
	Logger       *slog.Logger
}

// Run shows the interface until the user quits or ctx is done. The client is
// created by factory on the worker goroutine.
func Run(ctx context.Context, factory worker.Factory, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ScanInterval <= 0 {
		opts.ScanInterval = DefaultScanInterval
	}

	w := worker.New(factory, opts.Logger.With("component", "worker"), worker.DefaultQueueSize)
	l := newLoop(w, opts.Logger)
	p := tea.NewProgram(newModel(&l.kind, l.inbox, opts.Logger), tea.WithAltScreen(), tea.WithContext(ctx))
	l.publish = func(s app.State) {
		p.Send(stateMsg{s})
	}

	go w.Run(ctx)
	go worker.Every(ctx, opts.ScanInterval, w)
	go l.run(ctx)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// loop owns the application state and is the only caller of app.Transition.
type loop struct {
	inbox   chan app.Msg
	kind    atomic.Int32
	worker  *worker.Worker
	publish func(app.State)
	logger  *slog.Logger
}

func newLoop(w *worker.Worker, logger *slog.Logger) *loop {
	l := &loop{
		inbox:  make(chan app.Msg, inboxSize),
		worker: w,
		logger: logger,
	}
	l.kind.Store(int32(app.KindBrowsing))
	return l
}

func (l *loop) run(ctx context.Context) {
	state := app.New()
	l.kind.Store(int32(app.KindOf(state)))
	l.publish(state)

	workerDone := l.worker.Done()
	for {
		var msg app.Msg
		select {
		case <-ctx.Done():
			return
		case msg = <-l.inbox:
		case msg = <-l.worker.Results():
		case <-workerDone:
			l.logger.Warn("network worker stopped")
			workerDone = nil
			continue
		}

		next, cmd := app.Transition(state, msg)
		if cmd != nil && !l.worker.Submit(cmd) {
			l.logger.Warn("command dropped", "command", fmt.Sprintf("%T", cmd))
			if failed := l.worker.Dropped(cmd); failed != nil {
				next = app.Apply(next, failed)
			}
		}
		if app.KindOf(next) != app.KindOf(state) {
			l.logger.Debug("modal changed", "from", app.KindOf(state), "to", app.KindOf(next))
		}
		state = next
		l.kind.Store(int32(app.KindOf(state)))
		l.publish(state)

		if _, ok := state.(app.Quitting); ok {
			return
		}
	}
}

type stateMsg struct {
	state app.State
}

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// model is the bubbletea side. It never changes the application state, it
// only forwards input to the loop and draws what the loop publishes.
type model struct {
	state  app.State
	kind   *atomic.Int32
	inbox  chan<- app.Msg
	help   help.Model
	width  int
	logger *slog.Logger
}

func newModel(kind *atomic.Int32, inbox chan<- app.Msg, logger *slog.Logger) model {
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(CurrentTheme.Primary)
	h.Styles.ShortDesc = h.Styles.ShortDesc.Foreground(CurrentTheme.Subtle)
	return model{
		state:  app.New(),
		kind:   kind,
		inbox:  inbox,
		help:   h,
		logger: logger,
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if am, ok := translateKey(app.ModalKind(m.kind.Load()), msg); ok {
			m.forward(am)
		}
	case tickMsg:
		m.forward(app.Tick{})
		return m, tick()
	case stateMsg:
		m.state = msg.state
		if _, ok := msg.state.(app.Quitting); ok {
			return m, tea.Quit
		}
	}
	return m, nil
}

// forward never blocks the input loop. Input is dropped when the inbox is
// full.
func (m model) forward(msg app.Msg) {
	select {
	case m.inbox <- msg:
	default:
		m.logger.Debug("input dropped", "msg", fmt.Sprintf("%T", msg))
	}
}

func (m model) View() string {
	return render(m.state, m.width, m.help)
}
