package app

import "github.com/shazow/weefee/wifi"

// Msg is anything that can advance the state.
type Msg interface {
	msg()
}

// Input messages.
type (
	Tick              struct{}
	Quit              struct{}
	MoveUp            struct{}
	MoveDown          struct{}
	Select            struct{}
	Submit            struct{}
	Cancel            struct{}
	Rescan            struct{}
	RequestForget     struct{}
	ToggleDetails     struct{}
	ToggleAutoConnect struct{}

	InsertRunes struct{ Runes []rune }
	Backspace   struct{}
	CursorLeft  struct{}
	CursorRight struct{}
	WordLeft    struct{}
	WordRight   struct{}
	DeleteWord  struct{}
)

// Network outcomes.
type (
	NetworksFound       struct{ Networks []wifi.Network }
	DeviceStatusUpdated struct{ Status wifi.DeviceStatus }
	ConnectSucceeded    struct{ SSID string }
	ConnectFailed       struct {
		SSID string
		Err  error
	}
	OperationFailed struct{ Err error }
	ScanFailed      struct{ Err error }
)

func (Tick) msg()              {}
func (Quit) msg()              {}
func (MoveUp) msg()            {}
func (MoveDown) msg()          {}
func (Select) msg()            {}
func (Submit) msg()            {}
func (Cancel) msg()            {}
func (Rescan) msg()            {}
func (RequestForget) msg()     {}
func (ToggleDetails) msg()     {}
func (ToggleAutoConnect) msg() {}
func (InsertRunes) msg()       {}
func (Backspace) msg()         {}
func (CursorLeft) msg()        {}
func (CursorRight) msg()       {}
func (WordLeft) msg()          {}
func (WordRight) msg()         {}
func (DeleteWord) msg()        {}

func (NetworksFound) msg()       {}
func (DeviceStatusUpdated) msg() {}
func (ConnectSucceeded) msg()    {}
func (ConnectFailed) msg()       {}
func (OperationFailed) msg()     {}
func (ScanFailed) msg()          {}

// Command is network work requested by a transition.
type Command interface {
	command()
}

type (
	ScanCommand    struct{}
	ConnectCommand struct {
		SSID     string
		Password string
	}
	DisconnectCommand        struct{}
	ForgetCommand            struct{ SSID string }
	ToggleAutoConnectCommand struct{ SSID string }
)

func (ScanCommand) command()              {}
func (ConnectCommand) command()           {}
func (DisconnectCommand) command()        {}
func (ForgetCommand) command()            {}
func (ToggleAutoConnectCommand) command() {}
