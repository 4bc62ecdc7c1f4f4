// Package queue - rebalance.go
// Queue compaction and housekeeping utilities.
package queue

import "github.com/jose-valero/kart-queue-bot/internal/race"

// Compact fills earlier queues of the same track and mode by pulling head
// players from later ones, then unindexes the queues left empty behind them.
// mode must be concrete. It returns how many players moved.
func (m *Manager) Compact(track string, mode race.Mode) int {
	if !mode.Concrete() {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	qs := m.index.trackQueues(track, modeFilter(mode))
	moved := rebalanceForward(qs)
	for _, q := range qs[len(pruneTrailingEmpty(qs)):] {
		m.index.remove(q.Track(), q.ID())
	}
	return moved
}

// rebalanceForward moves players from each queue into the ones before it
// while they have room. Caller must hold the Manager mutex.
func rebalanceForward(qs []*RaceQueue) int {
	moved := 0
	for i := 0; i < len(qs)-1; i++ {
		for j := i + 1; j < len(qs); j++ {
			for {
				ok, added := moveHead(qs[i], qs[j])
				if !ok {
					break
				}
				if added {
					moved++
				}
			}
		}
	}
	return moved
}

// moveHead pops src's head player onto the tail of dst. ok is false when dst
// is full or src is empty; added is false when dst already held the player.
// Caller holds the Manager mutex. dst is always locked before src.
func moveHead(dst, src *RaceQueue) (ok, added bool) {
	dst.mu.Lock()
	defer dst.mu.Unlock()
	src.mu.Lock()
	defer src.mu.Unlock()

	if len(dst.players) >= dst.limit || len(src.players) == 0 {
		return false, false
	}
	head := src.players[0]
	src.players = append(src.players[:0], src.players[1:]...)
	if dst.indexOf(head.ID) >= 0 {
		return true, false
	}
	dst.players = append(dst.players, head)
	return true, true
}

// pruneTrailingEmpty returns qs without its trailing empty queues, always
// keeping the first one. Caller must hold the mutex.
func pruneTrailingEmpty(qs []*RaceQueue) []*RaceQueue {
	last := len(qs) - 1
	for last > 0 && qs[last].Len() == 0 {
		last--
	}
	return qs[:last+1]
}
