package queue

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// Manager is the registry of waiting queues, indexed by track and queue ID.
// Every method runs under one mutex; methods returning slices hand back
// copies taken while the lock is held.
type Manager struct {
	mu    sync.Mutex
	index *index
}

func NewManager() *Manager {
	return &Manager{index: newIndex()}
}

// Register indexes a freshly created queue under its own track and ID.
func (m *Manager) Register(q *RaceQueue) error {
	if q == nil {
		return ErrNilQueue
	}
	if !q.Mode().Concrete() {
		return ErrAutoMode
	}

	m.mu.Lock()
	if _, exists := m.index.get(q.Track(), q.ID()); exists {
		m.mu.Unlock()
		return ErrExists
	}
	m.index.put(q)
	m.mu.Unlock()

	logger.Debugf("[queue] registered %s track=%q mode=%s limit=%d", q.ID(), q.Track(), q.Mode(), q.Limit())
	return nil
}

// QueueExists reports whether track has a queue matching mode. Auto matches
// any queue on the track.
func (m *Manager) QueueExists(track string, mode race.Mode) bool {
	_, ok := m.Queue(track, mode)
	return ok
}

// Queue returns the first queue of track, in insertion order, whose mode
// matches mode.
func (m *Manager) Queue(track string, mode race.Mode) (*RaceQueue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.first(track, modeFilter(mode))
}

func (m *Manager) QueueByID(track string, id uuid.UUID) (*RaceQueue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.get(track, id)
}

// QueuesByMode returns every queue on every track matching mode.
func (m *Manager) QueuesByMode(mode race.Mode) []*RaceQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.all(modeFilter(mode))
}

// OpenQueues is QueuesByMode restricted to queues that still have room.
func (m *Manager) OpenQueues(mode race.Mode) []*RaceQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.all(openFilter(mode))
}

func (m *Manager) TrackQueues(track string) []*RaceQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.trackQueues(track, nil)
}

// TrackQueuesByMode filters one track by mode; Auto returns them all.
func (m *Manager) TrackQueuesByMode(track string, mode race.Mode) []*RaceQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.trackQueues(track, modeFilter(mode))
}

func (m *Manager) AllQueues() []*RaceQueue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.all(nil)
}

// Tracks lists tracks that currently have at least one queue.
func (m *Manager) Tracks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.trackNames()
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index.len()
}

// Locate returns the queue a player is currently waiting in.
func (m *Manager) Locate(playerID string) (*RaceQueue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := locatePlayer(m.index.all(nil), playerID)
	return q, q != nil
}

// RemoveByID clears and unindexes the queue with the given ID. Unknown
// tracks or IDs are ignored.
func (m *Manager) RemoveByID(track string, id uuid.UUID) bool {
	m.mu.Lock()
	q, ok := m.index.remove(track, id)
	if ok {
		q.Clear()
	}
	m.mu.Unlock()

	if ok {
		logger.Debugf("[queue] removed %s track=%q", id, track)
	}
	return ok
}

// Remove clears q and unindexes it using q's own track and ID.
func (m *Manager) Remove(q *RaceQueue) {
	if q == nil {
		return
	}
	q.Clear()
	m.RemoveByID(q.Track(), q.ID())
}

// Update swaps the stored queue for q when an entry with q's ID already
// exists on q's track. It never creates entries.
func (m *Manager) Update(q *RaceQueue) bool {
	if q == nil || !q.Mode().Concrete() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.index.get(q.Track(), q.ID()); !exists {
		return false
	}
	m.index.put(q)
	return true
}

// Clear empties every queue, then drops every track.
func (m *Manager) Clear() {
	m.mu.Lock()
	qs := m.index.all(nil)
	for _, q := range qs {
		q.Clear()
	}
	m.index.reset()
	m.mu.Unlock()

	logger.Infof("[queue] cleared %d queues", len(qs))
}

// QueuesFor reports whether track has demand worth racing against for mode.
// Auto needs any queue at all; TimeTrial needs a queue that is not a time
// trial; every other mode needs any queue. Only queues on track count,
// never other tracks.
func (m *Manager) QueuesFor(track string, mode race.Mode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	qs := m.index.trackQueues(track, nil)
	if mode == race.Auto {
		return len(qs) > 0
	}
	for _, q := range qs {
		if !(q.Mode() == race.TimeTrial && mode == race.TimeTrial) {
			return true
		}
	}
	return false
}
