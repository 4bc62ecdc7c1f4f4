// Package race holds the race mode enumeration shared by queues, the
// matchmaking flow and the Discord surface.
package race

import (
	"fmt"
	"strings"
)

// Mode is the kind of race a queue is waiting for.
type Mode string

const (
	Standard  Mode = "race"
	Cup       Mode = "cup"
	TimeTrial Mode = "time_trial"

	// Auto is a query wildcard. It matches any stored mode and is never
	// the mode of a queue itself.
	Auto Mode = "auto"
)

// Modes lists the concrete (storable) modes in display order.
var Modes = []Mode{Standard, Cup, TimeTrial}

// Matches reports whether a queue stored with mode stored satisfies a
// request for mode requested. Every lookup and filter goes through here.
func Matches(stored, requested Mode) bool {
	return requested == Auto || stored == requested
}

// Concrete reports whether m may be stored on a queue.
func (m Mode) Concrete() bool {
	switch m {
	case Standard, Cup, TimeTrial:
		return true
	}
	return false
}

func (m Mode) String() string { return string(m) }

// Label is the human readable form used in embeds.
func (m Mode) Label() string {
	switch m {
	case Standard:
		return "Race"
	case Cup:
		return "Cup"
	case TimeTrial:
		return "Time Trial"
	case Auto:
		return "Any"
	}
	return string(m)
}

// ParseMode accepts the canonical names plus a few aliases
// ("timetrial", "tt", "any", ""). The empty string means Auto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "any":
		return Auto, nil
	case "race", "standard":
		return Standard, nil
	case "cup":
		return Cup, nil
	case "time_trial", "timetrial", "tt":
		return TimeTrial, nil
	}
	return "", fmt.Errorf("unknown race mode %q", s)
}
