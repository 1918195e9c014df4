// Package app holds the application state machine. It performs no I/O: the
// caller feeds it messages and carries out the commands it returns.
package app

import "github.com/shazow/weefee/wifi"

// NoSelection is the Selected value when no network is selected.
const NoSelection = -1

// State is either Quitting or Active.
type State interface {
	state()
}

// Quitting is terminal and absorbs every message.
type Quitting struct{}

// Active is the running application.
type Active struct {
	Networks []wifi.Network
	// Selected is NoSelection or an index into Networks.
	Selected int
	// Device is nil until the first status arrives.
	Device *wifi.DeviceStatus
	Modal  Modal

	ShowDetails  bool
	SpinnerFrame int
}

func (Quitting) state() {}
func (Active) state()   {}

// New returns the initial state.
func New() State {
	return Active{Selected: NoSelection, Modal: Browsing{}}
}

// SelectedNetwork returns the selected network, if any.
func (a Active) SelectedNetwork() (wifi.Network, bool) {
	if a.Selected < 0 || a.Selected >= len(a.Networks) {
		return wifi.Network{}, false
	}
	return a.Networks[a.Selected], true
}

func (a Active) indexOf(ssid string) int {
	for i, n := range a.Networks {
		if n.SSID == ssid {
			return i
		}
	}
	return NoSelection
}

// Modal is the single dialog or mode layered over the network list.
type Modal interface {
	Kind() ModalKind
	modal()
}

type Browsing struct{}

type EnteringPassword struct {
	SSID  string
	Input TextInput
	// Err is shown inline, e.g. after a rejected password.
	Err string
}

type Connecting struct {
	SSID string
}

type ShowingError struct {
	Message string
}

// ConfirmingDisconnect asks before disconnecting the device.
type ConfirmingDisconnect struct{}

// ConfirmingForget asks before forgetting the selected network.
type ConfirmingForget struct{}

type ConfirmingWeakSecurity struct {
	SSID     string
	Security string
}

func (Browsing) modal()               {}
func (EnteringPassword) modal()       {}
func (Connecting) modal()             {}
func (ShowingError) modal()           {}
func (ConfirmingDisconnect) modal()   {}
func (ConfirmingForget) modal()       {}
func (ConfirmingWeakSecurity) modal() {}

// ModalKind identifies a modal without its data.
type ModalKind int32

const (
	KindBrowsing ModalKind = iota
	KindEnteringPassword
	KindConnecting
	KindShowingError
	KindConfirmingDisconnect
	KindConfirmingForget
	KindConfirmingWeakSecurity
	KindQuitting
)

func (Browsing) Kind() ModalKind               { return KindBrowsing }
func (EnteringPassword) Kind() ModalKind       { return KindEnteringPassword }
func (Connecting) Kind() ModalKind             { return KindConnecting }
func (ShowingError) Kind() ModalKind           { return KindShowingError }
func (ConfirmingDisconnect) Kind() ModalKind   { return KindConfirmingDisconnect }
func (ConfirmingForget) Kind() ModalKind       { return KindConfirmingForget }
func (ConfirmingWeakSecurity) Kind() ModalKind { return KindConfirmingWeakSecurity }

// KindOf returns the modal kind of s, or KindQuitting.
func KindOf(s State) ModalKind {
	if a, ok := s.(Active); ok && a.Modal != nil {
		return a.Modal.Kind()
	}
	return KindQuitting
}

func (k ModalKind) String() string {
	switch k {
	case KindBrowsing:
		return "browsing"
	case KindEnteringPassword:
		return "entering password"
	case KindConnecting:
		return "connecting"
	case KindShowingError:
		return "showing error"
	case KindConfirmingDisconnect:
		return "confirming disconnect"
	case KindConfirmingForget:
		return "confirming forget"
	case KindConfirmingWeakSecurity:
		return "confirming weak security"
	case KindQuitting:
		return "quitting"
	}
	return "unknown"
}
