//go:build linux

// Package networkmanager implements wifi.Client against NetworkManager over
// the D-Bus system bus.
package networkmanager

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/godbus/dbus/v5"

	"github.com/shazow/weefee/wifi"
)

// Options tunes the activation wait loop.
type Options struct {
	// PollInterval is how often the activation state is read.
	PollInterval time.Duration
	// ActivationTimeout bounds the whole wait.
	ActivationTimeout time.Duration
	// SecretsGracePeriod is how long a new profile's activation object may stay
	// unreadable before the attempt counts as a rejected password. Zero
	// disables the check.
	SecretsGracePeriod time.Duration
}

// DefaultOptions are used for any zero field passed to New.
var DefaultOptions = Options{
	PollInterval:       200 * time.Millisecond,
	ActivationTimeout:  30 * time.Second,
	SecretsGracePeriod: 2 * time.Second,
}

// Client talks to NetworkManager. It must be owned by a single goroutine.
type Client struct {
	NM       gonetworkmanager.NetworkManager
	Settings gonetworkmanager.Settings

	logger *slog.Logger
	opts   Options

	// stateReason reads the last state change reason of a device.
	stateReason func(gonetworkmanager.Device) (uint32, error)
}

// New connects to NetworkManager on the system bus.
func New(logger *slog.Logger, opts Options) (*Client, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create network manager client: %w: %v", wifi.ErrServiceUnavailable, err)
	}

	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w: %v", wifi.ErrServiceUnavailable, err)
	}

	return newClient(nm, settings, logger, opts), nil
}

func newClient(nm gonetworkmanager.NetworkManager, settings gonetworkmanager.Settings, logger *slog.Logger, opts Options) *Client {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultOptions.PollInterval
	}
	if opts.ActivationTimeout <= 0 {
		opts.ActivationTimeout = DefaultOptions.ActivationTimeout
	}
	if opts.SecretsGracePeriod < 0 {
		opts.SecretsGracePeriod = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		NM:          nm,
		Settings:    settings,
		logger:      logger,
		opts:        opts,
		stateReason: busStateReason,
	}
}

// DeviceStatus reads whether the wireless radio is enabled.
func (c *Client) DeviceStatus() (wifi.DeviceStatus, error) {
	enabled, err := c.NM.GetPropertyWirelessEnabled()
	if err != nil {
		return wifi.DeviceStatus{}, fmt.Errorf("failed to read WirelessEnabled: %w: %v", wifi.ErrServiceUnavailable, err)
	}
	return wifi.DeviceStatus{WirelessEnabled: enabled}, nil
}

// wirelessDevice returns the first wireless device.
func (c *Client) wirelessDevice() (gonetworkmanager.DeviceWireless, error) {
	devices, err := c.NM.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w: %v", wifi.ErrServiceUnavailable, err)
	}
	for _, device := range devices {
		if dev, ok := device.(gonetworkmanager.DeviceWireless); ok {
			return dev, nil
		}
	}
	return nil, wifi.ErrNoWirelessDevice
}

// Scan requests a rescan and returns every visible network annotated with its
// saved profile.
func (c *Client) Scan() ([]wifi.Network, error) {
	dev, err := c.wirelessDevice()
	if errors.Is(err, wifi.ErrNoWirelessDevice) {
		c.logger.Warn("scan skipped", "error", err)
		return []wifi.Network{}, nil
	}
	if err != nil {
		return nil, err
	}

	// Cached results are fine when a scan can't be requested, e.g. when one
	// is already running.
	if err := dev.RequestScan(); err != nil {
		c.logger.Debug("scan request failed", "error", err)
	}

	activePath := c.activeAccessPoint(dev)
	profiles := c.savedProfiles()

	aps, err := dev.GetAccessPoints()
	if err != nil {
		c.logger.Warn("failed to list access points", "error", err)
		return []wifi.Network{}, nil
	}

	networks := make([]wifi.Network, 0, len(aps))
	for _, ap := range aps {
		ssid, err := ap.GetPropertySSID()
		if err != nil || ssid == "" {
			continue
		}

		strength, _ := ap.GetPropertyStrength()
		wpaFlags, _ := ap.GetPropertyWPAFlags()
		rsnFlags, _ := ap.GetPropertyRSNFlags()
		security, weak := wifi.ClassifySecurity(uint32(wpaFlags), uint32(rsnFlags))

		n := wifi.Network{
			SSID:     ssid,
			Strength: uint8(strength),
			Security: security,
			IsWeak:   weak,
			IsActive: activePath != "" && ap.GetPath() == activePath,
		}
		if freq, err := ap.GetPropertyFrequency(); err == nil {
			f := uint32(freq)
			n.Frequency = &f
		}
		if p, ok := firstProfile(profiles, ssid); ok {
			n.IsKnown = true
			n.Priority = p.priority
			n.AutoConnect = p.autoConnect
			n.AutoConnectRetries = p.autoConnectRetries
		}
		networks = append(networks, n)
	}

	return wifi.SortNetworks(networks), nil
}

// activeAccessPoint returns the associated access point path, but only once
// the device is fully activated.
func (c *Client) activeAccessPoint(dev gonetworkmanager.DeviceWireless) dbus.ObjectPath {
	state, err := dev.GetPropertyState()
	if err != nil {
		c.logger.Debug("failed to read device state", "error", err)
		return ""
	}
	if state != gonetworkmanager.NmDeviceStateActivated {
		return ""
	}
	ap, err := dev.GetPropertyActiveAccessPoint()
	if err != nil || ap == nil {
		return ""
	}
	if path := ap.GetPath(); path != "/" {
		return path
	}
	return ""
}

// Disconnect deactivates the wireless device.
func (c *Client) Disconnect() error {
	dev, err := c.wirelessDevice()
	if err != nil {
		return err
	}
	if err := dev.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect: %w: %v", wifi.ErrOperationFailed, err)
	}
	return nil
}
