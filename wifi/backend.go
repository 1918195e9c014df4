package wifi

// Network is a single visible network, deduplicated by SSID.
type Network struct {
	SSID     string
	Strength uint8 // 0-100
	Security string
	IsWeak   bool

	// IsActive is only set when the device is fully activated on this network.
	IsActive bool
	IsKnown  bool

	// Saved profile fields, nil when unknown or unset.
	Priority           *int32
	AutoConnect        *bool
	AutoConnectRetries *int32
	Frequency          *uint32 // MHz
}

// Band returns a human readable radio band for the network frequency.
func (n Network) Band() string {
	if n.Frequency == nil {
		return "unknown band"
	}
	f := *n.Frequency
	switch {
	case f >= 2412 && f <= 2484:
		return "2.4 GHz"
	case f >= 5170 && f <= 5835:
		return "5 GHz"
	case f >= 5945 && f <= 7125:
		return "6 GHz"
	}
	return "unknown band"
}

// AutoConnectEnabled reports the effective autoconnect setting. Profiles that
// never set it follow the service default, which is enabled.
func (n Network) AutoConnectEnabled() bool {
	return n.AutoConnect == nil || *n.AutoConnect
}

// DeviceStatus is the state of the wireless radio.
type DeviceStatus struct {
	WirelessEnabled bool
}

// Client defines the operations against the host network service.
//
// Implementations are not safe for concurrent use; a single goroutine should
// own a Client for its whole lifetime.
type Client interface {
	// DeviceStatus reads the radio state.
	DeviceStatus() (DeviceStatus, error)
	// Scan requests a fresh scan and returns the deduplicated, sorted networks.
	Scan() ([]Network, error)
	// Connect activates a saved profile for ssid, or creates one using password.
	Connect(ssid, password string) error
	// Disconnect deactivates the wireless device.
	Disconnect() error
	// Forget deletes every saved profile for ssid.
	Forget(ssid string) error
	// ToggleAutoConnect flips the autoconnect flag on the saved profiles for ssid.
	ToggleAutoConnect(ssid string) error
}
