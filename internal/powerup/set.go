package powerup

import (
	"sync"

	"github.com/jose-valero/kart-queue-bot/internal/lifecycle"
)

// Set tracks live shells and advances them once per tick.
type Set struct {
	mu   sync.Mutex
	live []*Shell
}

func NewSet() *Set { return &Set{} }

func (s *Set) Add(sh *Shell) {
	if sh == nil {
		return
	}
	s.mu.Lock()
	s.live = append(s.live, sh)
	s.mu.Unlock()
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// OwnedBy returns the live shells fired by owner.
func (s *Set) OwnedBy(owner string) []*Shell {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Shell
	for _, sh := range s.live {
		if sh.IsOwner(owner) {
			out = append(out, sh)
		}
	}
	return out
}

// Tick decrements every shell's cooldown and expiry and forgets the ones
// that got removed. It returns how many were dropped.
func (s *Set) Tick() int {
	s.mu.Lock()
	live := append([]*Shell(nil), s.live...)
	s.mu.Unlock()

	for _, sh := range live {
		sh.DecrementCooldown()
		sh.DecrementExpiry()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.live[:0]
	dropped := 0
	for _, sh := range s.live {
		if sh.State() == lifecycle.Removed {
			dropped++
			continue
		}
		kept = append(kept, sh)
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept
	return dropped
}
