package app

import (
	"errors"
	"fmt"

	"github.com/shazow/weefee/wifi"
)

const incorrectPasswordMessage = "Incorrect password. Try again."

// Apply returns the state after m.
func Apply(s State, m Msg) State {
	next, _ := Transition(s, m)
	return next
}

// Transition returns the state after m, and the network work it requires, if
// any. It never mutates s.
func Transition(s State, m Msg) (State, Command) {
	if _, ok := m.(Quit); ok {
		return Quitting{}, nil
	}
	a, ok := s.(Active)
	if !ok {
		return s, nil
	}
	if a.Modal == nil {
		a.Modal = Browsing{}
	}

	switch m := m.(type) {
	case Tick:
		if _, ok := a.Modal.(Connecting); ok {
			a.SpinnerFrame++
		}
		return a, nil
	case NetworksFound:
		return a.withNetworks(m.Networks), nil
	case DeviceStatusUpdated:
		status := m.Status
		a.Device = &status
		return a, nil
	case ConnectSucceeded:
		if c, ok := a.Modal.(Connecting); ok && c.SSID == m.SSID {
			a.Modal = Browsing{}
		}
		return a, nil
	case ConnectFailed:
		return a.connectFailed(m), nil
	case OperationFailed:
		// The connect outcome and the rescan that follows decide what
		// happens to a connecting dialog.
		if _, ok := a.Modal.(Connecting); !ok {
			a.Modal = ShowingError{Message: ErrorMessage(m.Err)}
		}
		return a, nil
	case ScanFailed:
		switch a.Modal.(type) {
		case Browsing, ShowingError:
			a.Modal = ShowingError{Message: ErrorMessage(m.Err)}
		}
		return a, nil
	}

	switch modal := a.Modal.(type) {
	case Browsing:
		return a.browse(m)
	case EnteringPassword:
		return a.enterPassword(modal, m)
	case ShowingError:
		switch m.(type) {
		case Submit, Cancel:
			a.Modal = Browsing{}
		}
	case ConfirmingDisconnect:
		switch m.(type) {
		case Submit:
			a.Modal = Browsing{}
			return a, DisconnectCommand{}
		case Cancel:
			a.Modal = Browsing{}
		}
	case ConfirmingForget:
		switch m.(type) {
		case Submit:
			n, ok := a.SelectedNetwork()
			if !ok {
				a.Modal = ShowingError{Message: "The selected network is no longer available."}
				return a, nil
			}
			a.Modal = Browsing{}
			return a, ForgetCommand{SSID: n.SSID}
		case Cancel:
			a.Modal = Browsing{}
		}
	case ConfirmingWeakSecurity:
		switch m.(type) {
		case Submit:
			i := a.indexOf(modal.SSID)
			if i == NoSelection {
				a.Modal = ShowingError{Message: unavailable(modal.SSID)}
				return a, nil
			}
			if a.Networks[i].IsKnown {
				return a.connecting(modal.SSID, "")
			}
			a.Modal = EnteringPassword{SSID: modal.SSID}
		case Cancel:
			a.Modal = Browsing{}
		}
	case Connecting:
		// Input is ignored until the attempt finishes.
	}
	return a, nil
}

func (a Active) browse(m Msg) (State, Command) {
	switch m.(type) {
	case MoveUp:
		if a.Selected > 0 {
			a.Selected--
		} else if a.Selected == NoSelection && len(a.Networks) > 0 {
			a.Selected = 0
		}
	case MoveDown:
		if a.Selected < len(a.Networks)-1 {
			a.Selected++
		}
	case Select:
		n, ok := a.SelectedNetwork()
		if !ok {
			break
		}
		switch {
		case n.IsActive:
			a.Modal = ConfirmingDisconnect{}
		case n.IsWeak:
			a.Modal = ConfirmingWeakSecurity{SSID: n.SSID, Security: n.Security}
		case n.IsKnown:
			return a.connecting(n.SSID, "")
		default:
			a.Modal = EnteringPassword{SSID: n.SSID}
		}
	case RequestForget:
		if n, ok := a.SelectedNetwork(); ok && n.IsKnown {
			a.Modal = ConfirmingForget{}
		}
	case ToggleDetails:
		a.ShowDetails = !a.ShowDetails
	case ToggleAutoConnect:
		if !a.ShowDetails {
			break
		}
		n, ok := a.SelectedNetwork()
		if !ok {
			break
		}
		if !n.IsKnown {
			a.Modal = ShowingError{Message: fmt.Sprintf("Autoconnect can only be changed for saved networks, and %q is not saved.", n.SSID)}
			break
		}
		return a, ToggleAutoConnectCommand{SSID: n.SSID}
	case Rescan:
		return a, ScanCommand{}
	}
	return a, nil
}

func (a Active) enterPassword(modal EnteringPassword, m Msg) (State, Command) {
	input := modal.Input
	switch m := m.(type) {
	case Submit:
		return a.connecting(modal.SSID, input.Value())
	case Cancel:
		a.Modal = Browsing{}
		return a, nil
	case InsertRunes:
		input = input.Insert(m.Runes)
	case Backspace:
		input = input.Backspace()
	case CursorLeft:
		input = input.Left()
	case CursorRight:
		input = input.Right()
	case WordLeft:
		input = input.WordLeft()
	case WordRight:
		input = input.WordRight()
	case DeleteWord:
		input = input.DeleteWord()
	default:
		return a, nil
	}
	a.Modal = EnteringPassword{SSID: modal.SSID, Input: input, Err: modal.Err}
	return a, nil
}

func (a Active) connecting(ssid, password string) (State, Command) {
	a.Modal = Connecting{SSID: ssid}
	a.SpinnerFrame = 0
	return a, ConnectCommand{SSID: ssid, Password: password}
}

func (a Active) connectFailed(m ConnectFailed) Active {
	c, ok := a.Modal.(Connecting)
	if !ok || c.SSID != m.SSID {
		return a
	}
	if errors.Is(m.Err, wifi.ErrIncorrectPassword) {
		// Saved profiles always use their stored secret, so asking again
		// would not help.
		if i := a.indexOf(c.SSID); i >= 0 && a.Networks[i].IsKnown {
			a.Modal = ShowingError{Message: savedPasswordRejected(c.SSID)}
			return a
		}
		a.Modal = EnteringPassword{SSID: c.SSID, Err: incorrectPasswordMessage}
		return a
	}
	a.Modal = ShowingError{Message: "Connection failed: " + ErrorMessage(m.Err)}
	return a
}

// withNetworks replaces the list and re-resolves the selection by SSID.
func (a Active) withNetworks(networks []wifi.Network) Active {
	prev, hadSelection := a.SelectedNetwork()
	a.Networks = networks

	if ep, ok := a.Modal.(EnteringPassword); ok && a.indexOf(ep.SSID) == NoSelection {
		a.Modal = ShowingError{Message: unavailable(ep.SSID)}
		a.Selected = NoSelection
		return a
	}

	if hadSelection {
		if i := a.indexOf(prev.SSID); i != NoSelection {
			a.Selected = i
			return a
		}
	}

	switch {
	case a.Modal.Kind() != KindBrowsing:
		// Dialogs must not silently retarget another network.
		a.Selected = NoSelection
	case len(networks) == 0:
		a.Selected = NoSelection
	case !hadSelection:
		a.Selected = 0
	case a.Selected >= len(networks):
		a.Selected = len(networks) - 1
	}
	return a
}

func savedPasswordRejected(ssid string) string {
	return fmt.Sprintf("The saved password for %q was rejected. Forget the network and try again.", ssid)
}

func unavailable(ssid string) string {
	return fmt.Sprintf("Network %q is no longer available.", ssid)
}

// ErrorMessage renders err for display.
func ErrorMessage(err error) string {
	var rejected *wifi.ActivationRejectedError
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, wifi.ErrServiceUnavailable):
		return "NetworkManager is not reachable. Is it running?"
	case errors.Is(err, wifi.ErrNoWirelessDevice):
		return "No wireless device found."
	case errors.Is(err, wifi.ErrTimeout):
		return "Timed out waiting for the connection to come up."
	case errors.Is(err, wifi.ErrIncorrectPassword):
		return incorrectPasswordMessage
	case errors.As(err, &rejected):
		return rejected.Error()
	}
	return err.Error()
}
