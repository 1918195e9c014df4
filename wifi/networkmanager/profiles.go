//go:build linux

package networkmanager

import (
	"fmt"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/google/uuid"

	"github.com/shazow/weefee/wifi"
)

const wirelessType = "802-11-wireless"

// savedProfile is a wireless connection profile stored by NetworkManager.
type savedProfile struct {
	conn               gonetworkmanager.Connection
	ssid               string
	priority           *int32
	autoConnect        *bool
	autoConnectRetries *int32
}

// savedProfiles lists wireless profiles. Failures are logged and treated as
// no profiles, so a scan still shows visible networks.
func (c *Client) savedProfiles() []savedProfile {
	conns, err := c.Settings.ListConnections()
	if err != nil {
		c.logger.Warn("failed to list saved connections", "error", err)
		return nil
	}

	var profiles []savedProfile
	for _, conn := range conns {
		s, err := conn.GetSettings()
		if err != nil {
			c.logger.Debug("failed to read connection settings", "path", conn.GetPath(), "error", err)
			continue
		}
		if t, _ := s["connection"]["type"].(string); t != wirelessType {
			continue
		}
		ssidBytes, _ := s[wirelessType]["ssid"].([]byte)
		if len(ssidBytes) == 0 {
			continue
		}

		p := savedProfile{conn: conn, ssid: string(ssidBytes)}
		if v, ok := s["connection"]["autoconnect-priority"].(int32); ok {
			p.priority = &v
		}
		if v, ok := s["connection"]["autoconnect"].(bool); ok {
			p.autoConnect = &v
		}
		if v, ok := s["connection"]["autoconnect-retries"].(int32); ok {
			p.autoConnectRetries = &v
		}
		profiles = append(profiles, p)
	}
	return profiles
}

func profilesFor(profiles []savedProfile, ssid string) []savedProfile {
	var matches []savedProfile
	for _, p := range profiles {
		if p.ssid == ssid {
			matches = append(matches, p)
		}
	}
	return matches
}

func firstProfile(profiles []savedProfile, ssid string) (savedProfile, bool) {
	for _, p := range profiles {
		if p.ssid == ssid {
			return p, true
		}
	}
	return savedProfile{}, false
}

// Forget deletes every saved profile for ssid. It succeeds when there was
// nothing to delete or when at least one deletion went through.
func (c *Client) Forget(ssid string) error {
	matches := profilesFor(c.savedProfiles(), ssid)
	if len(matches) == 0 {
		c.logger.Debug("forget: no saved profile", "ssid", ssid)
		return nil
	}

	deleted := 0
	var lastErr error
	for _, p := range matches {
		if err := p.conn.Delete(); err != nil {
			c.logger.Warn("failed to delete connection", "ssid", ssid, "path", p.conn.GetPath(), "error", err)
			lastErr = err
			continue
		}
		deleted++
	}
	if deleted == 0 {
		return fmt.Errorf("failed to forget %q: %w: %v", ssid, wifi.ErrOperationFailed, lastErr)
	}
	return nil
}

// ToggleAutoConnect flips autoconnect on every saved profile for ssid. The
// new value is derived from the first profile, where unset means enabled.
func (c *Client) ToggleAutoConnect(ssid string) error {
	matches := profilesFor(c.savedProfiles(), ssid)
	if len(matches) == 0 {
		return fmt.Errorf("cannot toggle autoconnect for %q: %w", ssid, wifi.ErrUnknownNetwork)
	}

	current := matches[0].autoConnect == nil || *matches[0].autoConnect
	enable := !current

	for _, p := range matches {
		settings, err := p.conn.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to read settings for %q: %w: %v", ssid, wifi.ErrOperationFailed, err)
		}
		if _, ok := settings["connection"]; !ok {
			settings["connection"] = make(map[string]interface{})
		}
		settings["connection"]["autoconnect"] = enable

		applyUpdateWorkaround(settings)
		if err := p.conn.Update(settings); err != nil {
			return fmt.Errorf("failed to update %q: %w: %v", ssid, wifi.ErrOperationFailed, err)
		}
	}
	c.logger.Info("autoconnect toggled", "ssid", ssid, "enabled", enable, "profiles", len(matches))
	return nil
}

// deleteProfiles removes the profiles for ssid after a failed first attempt.
// Errors are only logged; the caller already has a failure to report.
func (c *Client) deleteProfiles(ssid string) {
	for _, p := range profilesFor(c.savedProfiles(), ssid) {
		if err := p.conn.Delete(); err != nil {
			c.logger.Warn("failed to clean up new connection", "ssid", ssid, "path", p.conn.GetPath(), "error", err)
		}
	}
}

// newProfileSettings builds the settings for a new infrastructure profile.
// The security block is only added when a password is given.
func newProfileSettings(ssid, password, iface string) map[string]map[string]interface{} {
	settings := map[string]map[string]interface{}{
		"connection": {
			"id":          ssid,
			"uuid":        uuid.New().String(),
			"type":        wirelessType,
			"autoconnect": true,
		},
		wirelessType: {
			"mode": "infrastructure",
			"ssid": []byte(ssid),
		},
		"ipv4": {"method": "auto"},
		"ipv6": {"method": "auto"},
	}
	if iface != "" {
		settings["connection"]["interface-name"] = iface
	}
	if password != "" {
		settings[wirelessType]["security"] = "802-11-wireless-security"
		settings["802-11-wireless-security"] = map[string]interface{}{
			"key-mgmt": "wpa-psk",
			"psk":      password,
		}
	}
	return settings
}

// applyUpdateWorkaround modifies the settings map to workaround D-Bus type errors.
//
// NetworkManager returns ipv6.addresses and ipv6.routes as 'aav' but expects
// 'a(ayuay)' and 'a(ayuayu)' on Update. Neither is touched by this client, so
// they are dropped before writing the settings back.
//
// See: https://github.com/Wifx/gonetworkmanager/issues/13 and https://github.com/godbus/dbus/issues/400
func applyUpdateWorkaround(settings map[string]map[string]interface{}) {
	if ipv6Settings, ok := settings["ipv6"]; ok {
		delete(ipv6Settings, "addresses")
		delete(ipv6Settings, "routes")
	}
}
