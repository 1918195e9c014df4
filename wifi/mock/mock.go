// Package mock provides an in-memory wifi.Client for tests and demos.
package mock

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shazow/weefee/wifi"
)

var DefaultActionSleep = 500 * time.Millisecond

// AccessPoint is a visible radio.
type AccessPoint struct {
	SSID      string
	Strength  uint8
	Frequency uint32
	WPAFlags  uint32
	RSNFlags  uint32
}

// Profile is a saved connection.
type Profile struct {
	SSID               string
	Secret             string
	Priority           *int32
	AutoConnect        *bool
	AutoConnectRetries *int32
}

// Client is an in-memory wifi.Client. Fields may be changed between calls
// to inject failures.
type Client struct {
	mu sync.Mutex

	AccessPoints    []AccessPoint
	Profiles        []Profile
	ActiveSSID      string
	WirelessEnabled bool

	// Passwords holds the correct secret for networks without a profile.
	// Networks missing here accept any password.
	Passwords map[string]string

	StatusError     error
	ScanError       error
	ConnectError    error
	DisconnectError error
	ForgetError     error
	ToggleError     error

	// ActionSleep is a delay before every action, to better emulate a real-world backend for the frontend. Set to 0 during testing.
	ActionSleep time.Duration
	// Jitter re-rolls signal strengths on every scan.
	Jitter bool

	calls []string
}

const (
	rsnPSK  = 0x100 | 0x8 | 0x80
	rsnSAE  = 0x400 | 0x8 | 0x80
	rsnEnt  = 0x200 | 0x8 | 0x80
	wpaPSK  = 0x100 | 0x4 | 0x40
	wpaTKIP = 0x4 | 0x40
)

func ptr[T any](v T) *T { return &v }

// New creates a mock client with a list of fun wifi networks.
func New() *Client {
	return &Client{
		AccessPoints: []AccessPoint{
			{SSID: "HideYoKidsHideYoWiFi", Strength: 82, Frequency: 5180, RSNFlags: rsnPSK},
			{SSID: "GET off my LAN", Strength: 64, Frequency: 2412, RSNFlags: rsnSAE},
			{SSID: "NeverGonnaGiveYouIP", Strength: 31, Frequency: 2437, WPAFlags: wpaTKIP},
			{SSID: "Unencrypted_Honeypot", Strength: 77, Frequency: 2462},
			{SSID: "Dunder MiffLAN", Strength: 55, Frequency: 5745, RSNFlags: rsnPSK},
			{SSID: "Police Surveillance 2", Strength: 48, Frequency: 2437, WPAFlags: wpaPSK},
			{SSID: "Hot singles in your area", Strength: 23, Frequency: 2412, RSNFlags: rsnPSK},
			{SSID: "Password is password", Strength: 87, Frequency: 5955, RSNFlags: rsnSAE},
			{SSID: "TacoBoutAGoodSignal", Strength: 99, Frequency: 5240, RSNFlags: rsnPSK},
			{SSID: "Corporate Synergy", Strength: 41, Frequency: 5500, RSNFlags: rsnEnt},
			{SSID: "Multi-AP Network", Strength: 80, Frequency: 2412, RSNFlags: rsnPSK},
			{SSID: "Multi-AP Network", Strength: 60, Frequency: 5180, RSNFlags: rsnPSK},
		},
		Profiles: []Profile{
			{SSID: "HideYoKidsHideYoWiFi", Secret: "hidden", Priority: ptr(int32(10)), AutoConnect: ptr(true)},
			{SSID: "HideYoKidsHideYoWiFi", Secret: "different_secret"},
			{SSID: "GET off my LAN", Secret: "lan", AutoConnect: ptr(false), AutoConnectRetries: ptr(int32(3))},
			{SSID: "Password is password", Secret: "password"},
		},
		Passwords: map[string]string{
			"TacoBoutAGoodSignal": "tacotuesday",
			"Dunder MiffLAN":      "thatswhatshesaid",
		},
		WirelessEnabled: true,
		ActionSleep:     DefaultActionSleep,
		Jitter:          true,
	}
}

func (m *Client) begin(call string) {
	m.calls = append(m.calls, call)
	time.Sleep(m.ActionSleep)
}

// Calls returns the operations performed so far, e.g. "connect:Home".
func (m *Client) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Client) DeviceStatus() (wifi.DeviceStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("status")

	if m.StatusError != nil {
		return wifi.DeviceStatus{}, m.StatusError
	}
	return wifi.DeviceStatus{WirelessEnabled: m.WirelessEnabled}, nil
}

func (m *Client) Scan() ([]wifi.Network, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("scan")

	if m.ScanError != nil {
		return nil, m.ScanError
	}
	if !m.WirelessEnabled {
		return []wifi.Network{}, nil
	}

	if m.Jitter {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		for i := range m.AccessPoints {
			m.AccessPoints[i].Strength = uint8(r.Intn(70) + 30)
		}
	}

	networks := make([]wifi.Network, 0, len(m.AccessPoints))
	for _, ap := range m.AccessPoints {
		security, weak := wifi.ClassifySecurity(ap.WPAFlags, ap.RSNFlags)
		freq := ap.Frequency
		n := wifi.Network{
			SSID:      ap.SSID,
			Strength:  ap.Strength,
			Security:  security,
			IsWeak:    weak,
			IsActive:  ap.SSID == m.ActiveSSID,
			Frequency: &freq,
		}
		if p := m.profile(ap.SSID); p != nil {
			n.IsKnown = true
			n.Priority = p.Priority
			n.AutoConnect = p.AutoConnect
			n.AutoConnectRetries = p.AutoConnectRetries
		}
		networks = append(networks, n)
	}
	return wifi.SortNetworks(networks), nil
}

// profile returns the first saved profile for ssid.
func (m *Client) profile(ssid string) *Profile {
	for i := range m.Profiles {
		if m.Profiles[i].SSID == ssid {
			return &m.Profiles[i]
		}
	}
	return nil
}

func (m *Client) visible(ssid string) bool {
	for _, ap := range m.AccessPoints {
		if ap.SSID == ssid {
			return true
		}
	}
	return false
}

func (m *Client) Connect(ssid, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("connect:" + ssid)

	if m.ConnectError != nil {
		return m.ConnectError
	}
	if !m.visible(ssid) {
		return &wifi.ActivationRejectedError{Reason: 53, Detail: "network not found"}
	}

	// Saved profiles use their stored secret.
	if m.profile(ssid) != nil {
		m.ActiveSSID = ssid
		return nil
	}

	if want, ok := m.Passwords[ssid]; ok && want != password {
		return fmt.Errorf("connect %q: %w", ssid, wifi.ErrIncorrectPassword)
	}
	m.Profiles = append(m.Profiles, Profile{SSID: ssid, Secret: password, AutoConnect: ptr(true)})
	m.ActiveSSID = ssid
	return nil
}

func (m *Client) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("disconnect")

	if m.DisconnectError != nil {
		return m.DisconnectError
	}
	m.ActiveSSID = ""
	return nil
}

func (m *Client) Forget(ssid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("forget:" + ssid)

	if m.ForgetError != nil {
		return m.ForgetError
	}
	kept := m.Profiles[:0]
	for _, p := range m.Profiles {
		if p.SSID != ssid {
			kept = append(kept, p)
		}
	}
	m.Profiles = kept
	if m.ActiveSSID == ssid {
		m.ActiveSSID = ""
	}
	return nil
}

func (m *Client) ToggleAutoConnect(ssid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("toggle:" + ssid)

	if m.ToggleError != nil {
		return m.ToggleError
	}
	first := m.profile(ssid)
	if first == nil {
		return fmt.Errorf("cannot toggle autoconnect for %q: %w", ssid, wifi.ErrUnknownNetwork)
	}
	enable := !(first.AutoConnect == nil || *first.AutoConnect)
	for i := range m.Profiles {
		if m.Profiles[i].SSID == ssid {
			m.Profiles[i].AutoConnect = ptr(enable)
		}
	}
	return nil
}
