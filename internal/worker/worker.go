// Package worker runs network commands on a dedicated goroutine that owns the
// wifi.Client.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shazow/weefee/internal/app"
	"github.com/shazow/weefee/wifi"
)

// DefaultQueueSize bounds pending commands.
const DefaultQueueSize = 8

var (
	// ErrBusy is reported for commands dropped because the queue was full.
	ErrBusy = errors.New("still working on earlier requests, try again")
	// ErrStopped is reported for commands submitted after the worker exited.
	ErrStopped = errors.New("network worker stopped")
)

// Factory creates the client. It is called on the worker goroutine.
type Factory func() (wifi.Client, error)

// Worker executes commands one at a time and reports outcomes as app
// messages. Every command is followed by a refresh of the device status and
// the network list.
type Worker struct {
	factory Factory
	logger  *slog.Logger

	commands    chan app.Command
	results     chan app.Msg
	scanPending atomic.Bool
	done        chan struct{}
}

// New creates a worker. Call Run to start it.
func New(factory Factory, logger *slog.Logger, queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		factory:  factory,
		logger:   logger,
		commands: make(chan app.Command, queueSize),
		results:  make(chan app.Msg, queueSize*2),
		done:     make(chan struct{}),
	}
}

// Results returns outcome messages. The consumer must keep draining it.
func (w *Worker) Results() <-chan app.Msg {
	return w.results
}

// Done is closed once Run returns.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Submit queues cmd without blocking. It reports false when the command was
// dropped. A scan is not queued twice.
func (w *Worker) Submit(cmd app.Command) bool {
	select {
	case <-w.done:
		return false
	default:
	}

	_, isScan := cmd.(app.ScanCommand)
	if isScan && !w.scanPending.CompareAndSwap(false, true) {
		return true
	}

	select {
	case w.commands <- cmd:
		return true
	default:
		if isScan {
			w.scanPending.Store(false)
		}
		w.logger.Debug("command dropped, queue full", "command", fmt.Sprintf("%T", cmd))
		return false
	}
}

// Dropped returns the outcome to apply in place of a command that Submit
// refused, so the state never waits on work that will not run. Scans have
// no outcome.
func (w *Worker) Dropped(cmd app.Command) app.Msg {
	err := ErrBusy
	select {
	case <-w.done:
		err = ErrStopped
	default:
	}

	switch cmd := cmd.(type) {
	case app.ConnectCommand:
		return app.ConnectFailed{SSID: cmd.SSID, Err: fmt.Errorf("connect %q: %w", cmd.SSID, err)}
	case app.DisconnectCommand:
		return app.OperationFailed{Err: fmt.Errorf("disconnect: %w", err)}
	case app.ForgetCommand:
		return app.OperationFailed{Err: fmt.Errorf("forget %q: %w", cmd.SSID, err)}
	case app.ToggleAutoConnectCommand:
		return app.OperationFailed{Err: fmt.Errorf("toggle autoconnect for %q: %w", cmd.SSID, err)}
	}
	return nil
}

// Run creates the client and processes commands until ctx is done. If the
// client can't be created the error is reported as an app.OperationFailed
// and returned.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.done)

	client, err := w.factory()
	if err != nil {
		w.logger.Error("failed to create client", "error", err)
		w.emit(ctx, app.OperationFailed{Err: err})
		return err
	}

	w.refresh(ctx, client)
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-w.commands:
			w.execute(ctx, client, cmd)
		}
	}
}

func (w *Worker) execute(ctx context.Context, client wifi.Client, cmd app.Command) {
	start := time.Now()
	logger := w.logger.With("command", fmt.Sprintf("%T", cmd))

	switch cmd := cmd.(type) {
	case app.ScanCommand:
		w.scanPending.Store(false)
	case app.ConnectCommand:
		logger.Info("connecting", "ssid", cmd.SSID)
		if err := client.Connect(cmd.SSID, cmd.Password); err != nil {
			logger.Warn("connect failed", "ssid", cmd.SSID, "error", err)
			w.emit(ctx, app.ConnectFailed{SSID: cmd.SSID, Err: err})
		} else {
			w.emit(ctx, app.ConnectSucceeded{SSID: cmd.SSID})
		}
	case app.DisconnectCommand:
		if err := client.Disconnect(); err != nil {
			w.failed(ctx, logger, fmt.Errorf("disconnect: %w", err))
		}
	case app.ForgetCommand:
		if err := client.Forget(cmd.SSID); err != nil {
			w.failed(ctx, logger, fmt.Errorf("forget %q: %w", cmd.SSID, err))
		}
	case app.ToggleAutoConnectCommand:
		if err := client.ToggleAutoConnect(cmd.SSID); err != nil {
			w.failed(ctx, logger, fmt.Errorf("toggle autoconnect for %q: %w", cmd.SSID, err))
		}
	default:
		logger.Warn("unknown command")
		return
	}

	w.refresh(ctx, client)
	logger.Debug("command finished", "elapsed", time.Since(start))
}

func (w *Worker) failed(ctx context.Context, logger *slog.Logger, err error) {
	logger.Warn("command failed", "error", err)
	w.emit(ctx, app.OperationFailed{Err: err})
}

// refresh reports the device status and a fresh scan.
func (w *Worker) refresh(ctx context.Context, client wifi.Client) {
	status, err := client.DeviceStatus()
	if err != nil {
		w.logger.Warn("device status failed", "error", err)
		w.emit(ctx, app.ScanFailed{Err: err})
		return
	}
	w.emit(ctx, app.DeviceStatusUpdated{Status: status})

	networks, err := client.Scan()
	if err != nil {
		w.logger.Warn("scan failed", "error", err)
		w.emit(ctx, app.ScanFailed{Err: err})
		return
	}
	w.emit(ctx, app.NetworksFound{Networks: networks})
}

func (w *Worker) emit(ctx context.Context, msg app.Msg) {
	select {
	case w.results <- msg:
	case <-ctx.Done():
	}
}

// Every submits a scan each interval until ctx is done or the worker stops.
func Every(ctx context.Context, interval time.Duration, w *Worker) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.Done():
			return
		case <-ticker.C:
			w.Submit(app.ScanCommand{})
		}
	}
}
