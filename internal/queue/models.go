package queue

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jose-valero/kart-queue-bot/internal/race"
)

// Player is a participant waiting in a queue.
type Player struct {
	ID       string    // discord user ID
	Username string    // display name
	JoinedAt time.Time // when the player joined
}

// RaceQueue is the waiting room for one track and one race mode.
// Identity fields are immutable; the participant list is guarded by the
// queue's own mutex so a held reference can be read at any time.
type RaceQueue struct {
	id        uuid.UUID
	track     string
	mode      race.Mode
	limit     int
	CreatedAt time.Time

	mu      sync.Mutex
	players []Player
}

// NewRaceQueue creates an empty queue with a fresh ID. mode must be concrete.
func NewRaceQueue(track string, mode race.Mode, limit int) (*RaceQueue, error) {
	if !mode.Concrete() {
		return nil, ErrAutoMode
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return &RaceQueue{
		id:        uuid.New(),
		track:     track,
		mode:      mode,
		limit:     limit,
		CreatedAt: time.Now(),
		players:   []Player{},
	}, nil
}

func (q *RaceQueue) ID() uuid.UUID { return q.id }
func (q *RaceQueue) Track() string { return q.track }
func (q *RaceQueue) Mode() race.Mode { return q.mode }
func (q *RaceQueue) Limit() int { return q.limit }

func (q *RaceQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}

// Open reports whether the queue still has room.
func (q *RaceQueue) Open() bool { return q.Len() < q.limit }

// Players returns a copy of the participants in join order.
func (q *RaceQueue) Players() []Player {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Player(nil), q.players...)
}

func (q *RaceQueue) Contains(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.indexOf(playerID) >= 0
}

// Add appends p. It fails with ErrFull when the queue is at its limit and
// ErrAlreadyIn when p is already waiting here.
func (q *RaceQueue) Add(p Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) >= q.limit {
		return ErrFull
	}
	if q.indexOf(p.ID) >= 0 {
		return ErrAlreadyIn
	}
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now()
	}
	q.players = append(q.players, p)
	return nil
}

// Remove drops the player keeping the order of the rest. It reports whether
// the player was present.
func (q *RaceQueue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(playerID)
	if i < 0 {
		return false
	}
	q.players = append(q.players[:i], q.players[i+1:]...)
	return true
}

// Clear empties the queue. Safe to call any number of times.
func (q *RaceQueue) Clear() {
	q.mu.Lock()
	q.players = q.players[:0]
	q.mu.Unlock()
}

// caller must hold q.mu
func (q *RaceQueue) indexOf(playerID string) int {
	for i, p := range q.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
