package tui

import (
	"fmt"
	"time"
)

// formatAge returns a human-readable age like "2.5 hours ago".
func formatAge(t, now time.Time) string {
	d := now.Sub(t)
	var s string
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute*2:
		s = fmt.Sprintf("%0.f seconds", d.Seconds())
	case d < time.Hour*2:
		s = fmt.Sprintf("%0.f minutes", d.Minutes())
	case d < time.Hour*48:
		s = fmt.Sprintf("%0.1f hours", d.Hours())
	default:
		s = fmt.Sprintf("%0.f days", d.Hours()/24)
	}
	return fmt.Sprintf("%s ago", s)
}
