// Package queue - helpers.go
// Small internal helpers kept separate to keep manager.go focused.
package queue

import "github.com/jose-valero/kart-queue-bot/internal/race"

// modeFilter keeps queues whose mode satisfies the requested one.
func modeFilter(mode race.Mode) func(*RaceQueue) bool {
	return func(q *RaceQueue) bool { return race.Matches(q.Mode(), mode) }
}

// openFilter keeps queues matching mode that still have room.
func openFilter(mode race.Mode) func(*RaceQueue) bool {
	return func(q *RaceQueue) bool { return race.Matches(q.Mode(), mode) && q.Open() }
}

// locatePlayer returns the first queue holding playerID, or nil.
// It is intended to be called under the Manager mutex.
func locatePlayer(qs []*RaceQueue, playerID string) *RaceQueue {
	for _, q := range qs {
		if q.Contains(playerID) {
			return q
		}
	}
	return nil
}
