//go:build !linux && !mock

package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/shazow/weefee/internal/worker"
	"github.com/shazow/weefee/wifi"
)

// newClientFactory fails on operating systems without NetworkManager.
func newClientFactory(_ *slog.Logger, _ clientOptions) worker.Factory {
	return func() (wifi.Client, error) {
		return nil, fmt.Errorf("%w: unsupported operating system %q", wifi.ErrServiceUnavailable, runtime.GOOS)
	}
}
