// Package powerup holds the shell power-ups fired during a race. Their
// lifetime is a lifecycle.Timer: once the expiry runs out the dropped world
// object is removed on the deferred context and the owner is cleared.
package powerup

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/jose-valero/kart-queue-bot/internal/lifecycle"
)

type Kind int

const (
	Green Kind = iota
	Red
	Blue
)

func (k Kind) String() string {
	switch k {
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "unknown"
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green":
		return Green, nil
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	}
	return 0, fmt.Errorf("unknown shell %q", s)
}

type Position struct {
	X, Y, Z float64
}

// Handle is a spawned world object.
type Handle interface {
	Remove()
}

// World drops shell objects into the game world.
type World interface {
	Drop(kind Kind, at Position) (Handle, error)
}

type perr string

func (e perr) Error() string { return string(e) }

const ErrAlreadyFired = perr("shell already fired")

type Shell struct {
	*lifecycle.Timer
	kind Kind

	mu     sync.Mutex
	handle Handle
}

func NewShell(kind Kind, exec lifecycle.Executor, opts ...lifecycle.Option) *Shell {
	return &Shell{
		Timer: lifecycle.NewTimer(exec, opts...),
		kind:  kind,
	}
}

func (s *Shell) Kind() Kind { return s.kind }

// Quantity rolls how many shells an item box hands out: usually one, three
// with a one in four chance. Blue shells always come alone.
func (s *Shell) Quantity(rng *rand.Rand) int {
	if s.kind == Blue || rng.Intn(4) != 0 {
		return 1
	}
	return 3
}

// Fired reports whether the shell is currently out in the world.
func (s *Shell) Fired() bool {
	s.mu.Lock()
	h := s.handle
	s.mu.Unlock()
	return h != nil && s.State() != lifecycle.Removed
}

// Spawn drops the shell above at and hands ownership to owner. Blue shells
// fly higher than the others.
func (s *Shell) Spawn(w World, at Position, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		return ErrAlreadyFired
	}

	if s.kind == Blue {
		at.Y += 2
	} else {
		at.Y++
	}
	h, err := w.Drop(s.kind, at)
	if err != nil {
		return err
	}
	s.handle = h
	s.SetOwner(owner)
	s.SetRelease(h.Remove)
	return nil
}
