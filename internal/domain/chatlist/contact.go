package chatlist

import (
	"fmt"
	"time"
)

// Contact summarizes one WhatsApp conversation thread for the admin list view.
type Contact struct {
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	LastMessage  string    `json:"last_message"`
	LastActivity time.Time `json:"last_activity"`
	Time         string    `json:"time"`
	Unread       int       `json:"unread"`
	Online       bool      `json:"online"`
}

// FormatRelative renders a timestamp as the human label shown in the chat
// list ("Just now", "5m ago", "3h ago", "2d ago"). Anything older than 30
// days falls back to an absolute date. The timestamp remains the source of
// truth; the label is a display derivative.
func FormatRelative(ts time.Time, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	elapsed := now.Sub(ts)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return ts.Format("Jan 2, 2006")
	}
}
