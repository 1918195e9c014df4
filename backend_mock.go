//go:build mock

package main

import (
	"log/slog"

	"github.com/shazow/weefee/internal/worker"
	"github.com/shazow/weefee/wifi"
	"github.com/shazow/weefee/wifi/mock"
)

func newClientFactory(logger *slog.Logger, _ clientOptions) worker.Factory {
	return func() (wifi.Client, error) {
		logger.Warn("using the in-memory mock client")
		return mock.New(), nil
	}
}
