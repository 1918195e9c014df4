package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color is a lipgloss color that can be decoded from a theme file. A string
// is a fixed color, a two element array is a [light, dark] adaptive pair.
type Color struct {
	lipgloss.TerminalColor
}

// UnmarshalTOML implements toml.Unmarshaler.
func (c *Color) UnmarshalTOML(v interface{}) error {
	switch v := v.(type) {
	case string:
		c.TerminalColor = lipgloss.Color(v)
	case []interface{}:
		if len(v) != 2 {
			return fmt.Errorf("adaptive color needs [light, dark], got %d values", len(v))
		}
		light, ok := v[0].(string)
		if !ok {
			return fmt.Errorf("adaptive color: light value is %T, not a string", v[0])
		}
		dark, ok := v[1].(string)
		if !ok {
			return fmt.Errorf("adaptive color: dark value is %T, not a string", v[1])
		}
		c.TerminalColor = lipgloss.AdaptiveColor{Light: light, Dark: dark}
	default:
		return fmt.Errorf("unsupported color value: %T", v)
	}
	return nil
}

// hex resolves c against the terminal background.
func (c Color) hex() string {
	switch c := c.TerminalColor.(type) {
	case lipgloss.AdaptiveColor:
		if lipgloss.HasDarkBackground() {
			return c.Dark
		}
		return c.Light
	case lipgloss.Color:
		return string(c)
	}
	return ""
}

func adaptive(light, dark string) Color {
	return Color{lipgloss.AdaptiveColor{Light: light, Dark: dark}}
}

// Theme contains the colors and icons for the application.
type Theme struct {
	Primary  Color
	Subtle   Color
	Success  Color
	Error    Color
	Warning  Color
	Normal   Color
	Disabled Color
	Border   Color
	Saved    Color

	SignalHigh Color
	SignalLow  Color

	ActiveIcon   string
	SecureIcon   string
	InsecureIcon string
	SavedIcon    string
	WarningIcon  string
}

// CurrentTheme is the active theme for the application.
var CurrentTheme = NewDefaultTheme()

// NewDefaultTheme creates a new default theme.
func NewDefaultTheme() Theme {
	return Theme{
		Primary:  adaptive("#5A56E0", "#D359E3"), // Purple/Pink
		Subtle:   adaptive("#9E9E9E", "#757575"), // Gray
		Success:  adaptive("#388E3C", "#81C784"), // Green
		Error:    adaptive("#D32F2F", "#E57373"), // Red
		Warning:  adaptive("#F57C00", "#FFB74D"), // Orange
		Normal:   adaptive("#212121", "#FFFFFF"), // Black/White
		Disabled: adaptive("#BDBDBD", "#424242"),
		Border:   adaptive("#BDBDBD", "#616161"),
		Saved:    adaptive("#0277BD", "#4FC3F7"), // Blue

		SignalHigh: adaptive("#00B300", "#00FF00"),
		SignalLow:  adaptive("#D05F00", "#BC3C00"),

		ActiveIcon:   "🔗 ",
		SecureIcon:   "🔒 ",
		InsecureIcon: "🔓 ",
		SavedIcon:    "💾 ",
		WarningIcon:  "⚠",
	}
}
