package view

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders an epoch-millisecond timestamp relative to
// now ("Just now", "2 hours ago"), switching to an absolute date past a
// week. Zero means never.
func FormatRelativeTime(millis int64, now time.Time) string {
	if millis == 0 {
		return "Never"
	}
	t := time.UnixMilli(millis)
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		m := int(diff.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case diff < 24*time.Hour:
		h := int(diff.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	case diff < 7*24*time.Hour:
		d := int(diff.Hours() / 24)
		if d == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", d)
	}

	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}
