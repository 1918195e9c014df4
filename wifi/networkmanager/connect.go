//go:build linux

package networkmanager

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/godbus/dbus/v5"

	"github.com/shazow/weefee/wifi"
)

// NMDeviceStateReason values that matter when an activation fails.
const (
	reasonConfigFailed           uint32 = 4
	reasonIPConfigUnavailable    uint32 = 5
	reasonIPConfigExpired        uint32 = 6
	reasonNoSecrets              uint32 = 7
	reasonSupplicantDisconnect   uint32 = 8
	reasonSupplicantConfigFailed uint32 = 9
	reasonSupplicantFailed       uint32 = 10
	reasonSupplicantTimeout      uint32 = 11
	reasonSSIDNotFound           uint32 = 53
)

var reasonText = map[uint32]string{
	reasonConfigFailed:           "device configuration failed",
	reasonIPConfigUnavailable:    "no IP configuration available",
	reasonIPConfigExpired:        "IP configuration expired",
	reasonSupplicantConfigFailed: "supplicant configuration failed",
	reasonSupplicantFailed:       "supplicant failed",
	reasonSupplicantTimeout:      "supplicant timed out",
	reasonSSIDNotFound:           "network not found",
}

// Connect activates the saved profile for ssid, or creates a new profile with
// password and activates that. A profile created here is removed again if the
// activation does not succeed.
func (c *Client) Connect(ssid, password string) error {
	dev, err := c.wirelessDevice()
	if err != nil {
		return err
	}
	ap := c.findAccessPoint(dev, ssid)

	if p, ok := firstProfile(c.savedProfiles(), ssid); ok {
		return c.activateSaved(p, dev, ap)
	}

	err = c.activateNew(ssid, password, dev, ap)
	if err != nil {
		c.deleteProfiles(ssid)
	}
	return err
}

func (c *Client) activateSaved(p savedProfile, dev gonetworkmanager.DeviceWireless, ap gonetworkmanager.AccessPoint) error {
	c.logger.Info("activating saved connection", "ssid", p.ssid, "path", p.conn.GetPath())

	var active gonetworkmanager.ActiveConnection
	var err error
	if ap != nil {
		active, err = c.NM.ActivateWirelessConnection(p.conn, dev, ap)
	} else {
		active, err = c.NM.ActivateConnection(p.conn, dev, nil)
	}
	if isAlreadyActive(err) {
		c.logger.Debug("connection already active", "ssid", p.ssid)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to activate %q: %w", p.ssid, &wifi.ActivationRejectedError{Detail: err.Error()})
	}
	return c.waitForActivation(active, dev, false)
}

func (c *Client) activateNew(ssid, password string, dev gonetworkmanager.DeviceWireless, ap gonetworkmanager.AccessPoint) error {
	iface, _ := dev.GetPropertyInterface()
	settings := newProfileSettings(ssid, password, iface)
	c.logger.Info("adding new connection", "ssid", ssid, "secured", password != "")

	var active gonetworkmanager.ActiveConnection
	var err error
	if ap != nil {
		active, err = c.NM.AddAndActivateWirelessConnection(settings, dev, ap)
	} else {
		active, err = c.NM.AddAndActivateConnection(settings, dev)
	}
	if err != nil {
		if mentionsSecrets(err) {
			return fmt.Errorf("failed to add %q: %w", ssid, wifi.ErrIncorrectPassword)
		}
		return fmt.Errorf("failed to add %q: %w", ssid, &wifi.ActivationRejectedError{Detail: err.Error()})
	}
	return c.waitForActivation(active, dev, true)
}

// findAccessPoint returns a visible access point for ssid, or nil.
func (c *Client) findAccessPoint(dev gonetworkmanager.DeviceWireless, ssid string) gonetworkmanager.AccessPoint {
	aps, err := dev.GetAccessPoints()
	if err != nil {
		c.logger.Debug("failed to list access points", "error", err)
		return nil
	}
	for _, ap := range aps {
		if s, err := ap.GetPropertySSID(); err == nil && s == ssid {
			return ap
		}
	}
	return nil
}

// waitForActivation polls the active connection until it settles.
//
// Rejected secrets often show up as the active connection object vanishing
// rather than a clean state change, so for a new profile unreadable state
// that outlasts the grace period counts as a wrong password.
func (c *Client) waitForActivation(active gonetworkmanager.ActiveConnection, dev gonetworkmanager.Device, isNew bool) error {
	start := time.Now()
	var failingSince time.Time

	for {
		if time.Since(start) > c.opts.ActivationTimeout {
			return fmt.Errorf("%w after %s", wifi.ErrTimeout, c.opts.ActivationTimeout)
		}

		state, err := active.GetPropertyState()
		if err != nil {
			if failingSince.IsZero() {
				failingSince = time.Now()
			}
			if isNew && c.opts.SecretsGracePeriod > 0 && time.Since(failingSince) > c.opts.SecretsGracePeriod {
				c.logger.Debug("active connection vanished", "error", err)
				return fmt.Errorf("activation disappeared: %w", wifi.ErrIncorrectPassword)
			}
		} else {
			failingSince = time.Time{}
			switch state {
			case gonetworkmanager.NmActiveConnectionStateActivated:
				return nil
			case gonetworkmanager.NmActiveConnectionStateDeactivated:
				return c.deactivated(dev)
			}
		}

		time.Sleep(c.opts.PollInterval)
	}
}

func (c *Client) deactivated(dev gonetworkmanager.Device) error {
	reason, err := c.stateReason(dev)
	if err != nil {
		c.logger.Debug("failed to read state reason", "error", err)
		return &wifi.ActivationRejectedError{Detail: "connection deactivated"}
	}
	c.logger.Info("activation failed", "reason", reason)
	switch reason {
	case reasonNoSecrets, reasonSupplicantDisconnect:
		return fmt.Errorf("reason %d: %w", reason, wifi.ErrIncorrectPassword)
	}
	return &wifi.ActivationRejectedError{Reason: reason, Detail: reasonText[reason]}
}

// busStateReason reads Device.StateReason, a (state, reason) pair that
// gonetworkmanager does not expose.
func busStateReason(dev gonetworkmanager.Device) (uint32, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return 0, err
	}
	obj := conn.Object("org.freedesktop.NetworkManager", dev.GetPath())
	v, err := obj.GetProperty("org.freedesktop.NetworkManager.Device.StateReason")
	if err != nil {
		return 0, err
	}
	pair, ok := v.Value().([]interface{})
	if !ok || len(pair) != 2 {
		return 0, fmt.Errorf("unexpected StateReason value %v", v)
	}
	reason, ok := pair[1].(uint32)
	if !ok {
		return 0, fmt.Errorf("unexpected StateReason value %v", v)
	}
	return reason, nil
}

func isAlreadyActive(err error) bool {
	if err == nil {
		return false
	}
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) && strings.HasSuffix(dbusErr.Name, "AlreadyActive") {
		return true
	}
	return strings.Contains(err.Error(), "AlreadyActive")
}

func mentionsSecrets(err error) bool {
	s := strings.ToLower(err.Error())
	for _, word := range []string{"secrets", "802-1x", "password", "psk"} {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
