package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/shazow/weefee/internal/app"
	wflog "github.com/shazow/weefee/internal/log"
	"github.com/shazow/weefee/wifi"
)

const defaultWidth = 80

var connectingFrames = spinner.Dot

// render draws a snapshot of the application state. It only reads s.
func render(s app.State, width int, h help.Model) string {
	a, ok := s.(app.Active)
	if !ok {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	inner := width - 4

	var b strings.Builder
	b.WriteString(renderHeader(a, inner))
	b.WriteString("\n")
	b.WriteString(renderList(a, inner))
	if dialog := renderDialog(a, inner); dialog != "" {
		b.WriteString("\n")
		b.WriteString(dialog)
	}
	if km := helpFor(app.KindOf(a)); km != nil {
		h.Width = inner
		b.WriteString("\n")
		b.WriteString(h.View(km))
	}
	return lipgloss.NewStyle().Margin(0, 1).Render(b.String())
}

func headerText(a app.Active) string {
	if a.Device == nil {
		return "WeeFee | Loading..."
	}
	enabled := "disabled"
	if a.Device.WirelessEnabled {
		enabled = "enabled"
	}
	connected := "not connected"
	for _, n := range a.Networks {
		if n.IsActive {
			connected = "connected"
			break
		}
	}
	return fmt.Sprintf("WeeFee | WiFi %s, %s", enabled, connected)
}

func renderHeader(a app.Active, width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(CurrentTheme.Border).
		Foreground(CurrentTheme.Primary).
		Bold(true).
		Width(width)
	return style.Render(headerText(a))
}

func renderList(a app.Active, width int) string {
	dimmed := app.KindOf(a) != app.KindBrowsing

	lines := []string{lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render("Networks")}
	if len(a.Networks) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("  No networks found."))
	}
	for i, n := range a.Networks {
		lines = append(lines, renderNetwork(n, i == a.Selected, dimmed))
		if a.ShowDetails {
			lines = append(lines, renderDetails(n)...)
		}
	}
	if a.ShowDetails {
		if r, ok := wflog.Latest(slog.LevelWarn); ok {
			event := fmt.Sprintf("last event: %s (%s)", r.Message, formatAge(r.Time, time.Now()))
			lines = append(lines, "", lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render(event))
		}
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(CurrentTheme.Border).
		Width(width)
	return style.Render(strings.Join(lines, "\n"))
}

func signalBars(strength uint8) string {
	switch {
	case strength <= 25:
		return "▁   "
	case strength <= 50:
		return "▁▃  "
	case strength <= 75:
		return "▁▃▅ "
	}
	return "▁▃▅▇"
}

// signalColor blends between the low and high signal colors.
func signalColor(strength uint8) lipgloss.TerminalColor {
	start, err := colorful.Hex(CurrentTheme.SignalLow.hex())
	if err != nil {
		return CurrentTheme.SignalHigh
	}
	end, err := colorful.Hex(CurrentTheme.SignalHigh.hex())
	if err != nil {
		return CurrentTheme.SignalHigh
	}
	p := float64(min(strength, 100)) / 100.0
	return lipgloss.Color(start.BlendRgb(end, p).Hex())
}

func networkIcon(n wifi.Network) string {
	switch {
	case n.IsActive:
		return CurrentTheme.ActiveIcon
	case n.IsKnown:
		return CurrentTheme.SavedIcon
	case n.IsWeak:
		return CurrentTheme.InsecureIcon
	}
	return CurrentTheme.SecureIcon
}

func renderNetwork(n wifi.Network, selected, dimmed bool) string {
	var titleStyle lipgloss.Style
	switch {
	case n.IsActive:
		titleStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Success)
	case n.IsKnown:
		titleStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Saved)
	default:
		titleStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Normal)
	}
	signalStyle := lipgloss.NewStyle().Foreground(signalColor(n.Strength))
	if dimmed {
		titleStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Disabled)
		signalStyle = titleStyle
	}

	prefix := "  "
	if selected {
		prefix = lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render("▶ ")
		titleStyle = titleStyle.Bold(true)
	}

	line := prefix + networkIcon(n) + signalStyle.Render(signalBars(n.Strength)) + " " + titleStyle.Render(n.SSID)
	if n.IsActive {
		line += titleStyle.Render(" (Connected)")
	}
	return line
}

// networkDetails describes a network for the detail view.
func networkDetails(n wifi.Network) []string {
	parts := []string{fmt.Sprintf("signal: %d%%", n.Strength)}
	if n.Frequency != nil {
		parts = append(parts, fmt.Sprintf("frequency: %d MHz (%s)", *n.Frequency, n.Band()))
	}
	security := "security: " + n.Security
	if n.IsWeak {
		security += " (" + CurrentTheme.WarningIcon + " insecure)"
	}
	parts = append(parts, security)
	if n.IsKnown {
		parts = append(parts, "known network (F to forget)")
	}
	lines := []string{strings.Join(parts, " | ")}

	if !n.IsKnown {
		return lines
	}
	var saved []string
	if n.Priority != nil {
		saved = append(saved, fmt.Sprintf("priority: %d", *n.Priority))
	}
	switch {
	case n.AutoConnect == nil:
		saved = append(saved, "auto-connect: default (A to toggle)")
	case *n.AutoConnect:
		saved = append(saved, "auto-connect: on (A to toggle)")
	default:
		saved = append(saved, "auto-connect: off (A to toggle)")
	}
	if n.AutoConnectRetries != nil {
		saved = append(saved, fmt.Sprintf("auto-connect retries: %d", *n.AutoConnectRetries))
	} else {
		saved = append(saved, "auto-connect retries: default")
	}
	return append(lines, strings.Join(saved, " | "))
}

func renderDetails(n wifi.Network) []string {
	style := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
	lines := networkDetails(n)
	for i, l := range lines {
		lines[i] = style.Render("        " + l)
	}
	return lines
}

// renderInput draws the password through a throwaway textinput.Model, so the
// state keeps its own immutable buffer.
func renderInput(in app.TextInput) string {
	ti := textinput.New()
	ti.Prompt = ""
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	ti.SetValue(in.Value())
	ti.SetCursor(in.Cursor())
	return ti.View()
}

func weakSecurityMessage(ssid, security string) string {
	switch {
	case security == "Open":
		return fmt.Sprintf("Network %s has no security. Anyone can intercept your data.", ssid)
	case strings.Contains(security, "WEP"):
		return fmt.Sprintf("Network %s uses %s.\nWEP is outdated and can be cracked in minutes. Your data can be easily intercepted by attackers.", ssid, security)
	}
	return fmt.Sprintf("Network %s uses %s.\nThis encryption method is outdated and insecure. Your data may be vulnerable to interception.", ssid, security)
}

func dialogStyle(border Color, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(border).
		Padding(0, 1).
		Width(width)
}

func titled(title string, c Color, body string) string {
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(title) + "\n\n" + body
}

func renderDialog(a app.Active, width int) string {
	subtle := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
	ssid := ""
	if n, ok := a.SelectedNetwork(); ok {
		ssid = n.SSID
	}

	switch m := a.Modal.(type) {
	case app.EnteringPassword:
		body := fmt.Sprintf("Connecting to %s...\n\n%s", m.SSID, renderInput(m.Input))
		if m.Err != "" {
			body += "\n\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(m.Err)
		}
		return dialogStyle(CurrentTheme.Primary, width).Render(titled("Password", CurrentTheme.Primary, body))

	case app.Connecting:
		frame := connectingFrames.Frames[a.SpinnerFrame%len(connectingFrames.Frames)]
		spin := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(frame)
		return dialogStyle(CurrentTheme.Primary, width).Render(fmt.Sprintf("%s Connecting to %s...", spin, m.SSID))

	case app.ShowingError:
		return dialogStyle(CurrentTheme.Error, width).Render(titled("Error", CurrentTheme.Error, m.Message))

	case app.ConfirmingDisconnect:
		body := fmt.Sprintf("Disconnect from %s?\n\n%s", ssid, subtle.Render("Yes / No"))
		return dialogStyle(CurrentTheme.Warning, width).Render(titled("Disconnect", CurrentTheme.Warning, body))

	case app.ConfirmingForget:
		message := "This will delete the saved password and settings."
		if n, ok := a.SelectedNetwork(); ok && n.IsActive {
			message = "This will disconnect and delete the saved password and settings."
		}
		body := fmt.Sprintf("Forget network %s?\n\n%s\n\n%s", ssid, message, subtle.Render("Yes / No"))
		return dialogStyle(CurrentTheme.Error, width).Render(titled("Forget Network", CurrentTheme.Error, body))

	case app.ConfirmingWeakSecurity:
		body := weakSecurityMessage(m.SSID, m.Security) + "\n\n" + subtle.Render("Continue anyway? Y/N")
		title := CurrentTheme.WarningIcon + " Insecure Network"
		return dialogStyle(CurrentTheme.Error, width).Render(titled(title, CurrentTheme.Error, body))
	}
	return ""
}
