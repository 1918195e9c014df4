//go:build linux && !mock

package main

import (
	"log/slog"

	"github.com/shazow/weefee/internal/worker"
	"github.com/shazow/weefee/wifi"
	"github.com/shazow/weefee/wifi/networkmanager"
)

func newClientFactory(logger *slog.Logger, opts clientOptions) worker.Factory {
	return func() (wifi.Client, error) {
		c, err := networkmanager.New(logger.With("component", "networkmanager"), networkmanager.Options{
			PollInterval:       opts.PollInterval,
			ActivationTimeout:  opts.ActivationTimeout,
			SecretsGracePeriod: opts.SecretsGrace,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
