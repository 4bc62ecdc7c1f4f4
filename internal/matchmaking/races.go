package matchmaking

import (
	"sort"
	"sync"
	"time"

	"github.com/jose-valero/kart-queue-bot/internal/queue"
	"github.com/jose-valero/kart-queue-bot/internal/race"
)

// Race is a race that left its queue and is being driven.
type Race struct {
	ID      string
	Track   string
	Mode    race.Mode
	Players []queue.Player
	Started time.Time
}

// Races is the set of races in progress.
type Races struct {
	mu   sync.RWMutex
	byID map[string]Race
}

func NewRaces() *Races {
	return &Races{byID: map[string]Race{}}
}

func (r *Races) Put(rc Race) {
	r.mu.Lock()
	r.byID[rc.ID] = rc
	r.mu.Unlock()
}

func (r *Races) Get(id string) (Race, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rc, ok := r.byID[id]
	return rc, ok
}

func (r *Races) Remove(id string) (Race, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rc, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
	}
	return rc, ok
}

// ByPlayer returns the race playerID is driving in.
func (r *Races) ByPlayer(playerID string) (Race, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rc := range r.byID {
		for _, p := range rc.Players {
			if p.ID == playerID {
				return rc, true
			}
		}
	}
	return Race{}, false
}

func (r *Races) Count() int {
	r.mu.RLock()
	n := len(r.byID)
	r.mu.RUnlock()
	return n
}

// List returns the races oldest first.
func (r *Races) List() []Race {
	r.mu.RLock()
	out := make([]Race, 0, len(r.byID))
	for _, rc := range r.byID {
		out = append(out, rc)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID < out[j].ID
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}
