// Package timeutil provides time formatting utilities for CLI output.
package timeutil

import (
	"fmt"
	"time"
)

// LocalTimeFormat is the format used for displaying local times in CLI output.
// Uses Go's reference time: Mon Jan 2 15:04:05 2006.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatDuration renders d as "1d 2h 3m", "2h 3m", "3m 4s" or "4s",
// dropping the sign.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatExpiry describes a token expiry relative to now: "in 59m 10s",
// "expired 3m 2s ago", or "-" when there is no expiry.
func FormatExpiry(expiresAt, now time.Time) string {
	if expiresAt.IsZero() {
		return "-"
	}
	left := expiresAt.Sub(now)
	if left <= 0 {
		return "expired " + FormatDuration(left) + " ago"
	}
	return "in " + FormatDuration(left)
}

// FormatLocal returns t in local time, or "-" when t is zero.
func FormatLocal(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(LocalTimeFormat)
}
