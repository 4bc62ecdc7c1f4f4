// Package events - types.go
package events

import "time"

// RaceStarted is emitted when a queue fills (or its countdown ends) and its
// players are handed to a new race.
type RaceStarted struct {
	RaceID  string
	Track   string
	Mode    string
	Players []string // usernames in join order
	At      time.Time
}

// RaceFinished is emitted when an active race is closed.
type RaceFinished struct {
	RaceID string
	Track  string
}

// QueueCancelled is emitted when a queue is torn down without racing.
type QueueCancelled struct {
	QueueID string
	Track   string
	Reason  string
}
