package ui

import (
	"fmt"
	"strings"
	"time"
)

func queueTitle(open int) string {
	switch open {
	case 0:
		return "Kart Queues • 💤 idle"
	case 1:
		return "Kart Queues • 🟢 1 queue open"
	}
	return fmt.Sprintf("Kart Queues • 🟢 %d queues open", open)
}

// humanize the time of a race
func humanSince(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := time.Since(t)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh ago", h)
	}
	return fmt.Sprintf("%dh %dm ago", h, m)
}

// ksuids are long; the tail is enough to tell races apart in chat
func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return safe(id)
}

// fallback to falsy data
func safe(s string) string {
	t := strings.TrimSpace(s)
	if t == "" || t == "-" {
		return "—"
	}
	return t
}

func bulletList(items []string, max int) string {
	if len(items) == 0 {
		return "—"
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	var b strings.Builder
	for _, p := range items {
		fmt.Fprintf(&b, "• %s\n", p)
	}
	return strings.TrimRight(b.String(), "\n")
}

func quoteBlock(s string) string {
	if s == "" {
		return "> —"
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = "> " + lines[i]
	}
	return strings.Join(lines, "\n")
}
