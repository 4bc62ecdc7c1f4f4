// Package lifecycle implements the cooldown/expiry state machine shared by
// power-ups and queue countdowns.
//
// A Timer is advanced once per tick by its owning subsystem. When its expiry
// reaches zero it removes itself: the release func is handed to an Executor
// (never run inline), the owner is cleared and the timer becomes Removed.
// Removal happens exactly once.
package lifecycle

import "sync"

const (
	DefaultCooldown = 0
	DefaultExpiry   = 33
)

type State int

const (
	Active State = iota
	Expired
	Removed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Expired:
		return "expired"
	case Removed:
		return "removed"
	}
	return "unknown"
}

type Option func(*Timer)

func WithCooldown(n int) Option { return func(t *Timer) { t.cooldown = max(0, n) } }
func WithExpiry(n int) Option   { return func(t *Timer) { t.expiry = max(0, n) } }
func WithOwner(id string) Option {
	return func(t *Timer) { t.owner = id }
}

// WithRelease sets the teardown run on the executor when the timer is removed.
func WithRelease(fn func()) Option { return func(t *Timer) { t.release = fn } }

type Timer struct {
	mu       sync.Mutex
	cooldown int
	expiry   int
	owner    string
	removed  bool
	release  func()
	exec     Executor
}

// NewTimer creates an Active timer with the default cooldown and expiry.
// A nil exec runs the release inline on the goroutine that triggers removal.
func NewTimer(exec Executor, opts ...Option) *Timer {
	t := &Timer{
		cooldown: DefaultCooldown,
		expiry:   DefaultExpiry,
		exec:     exec,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Timer) stateLocked() State {
	switch {
	case t.removed:
		return Removed
	case t.expiry <= 0:
		return Expired
	}
	return Active
}

func (t *Timer) Cooldown() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cooldown
}

func (t *Timer) SetCooldown(n int) {
	t.mu.Lock()
	t.cooldown = max(0, n)
	t.mu.Unlock()
}

// OnCooldown reports whether the gated action must still wait.
func (t *Timer) OnCooldown() bool { return t.Cooldown() > 0 }

func (t *Timer) Expiry() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expiry
}

// SetExpiry has no effect once the timer is removed.
func (t *Timer) SetExpiry(n int) {
	t.mu.Lock()
	if !t.removed {
		t.expiry = max(0, n)
	}
	t.mu.Unlock()
}

func (t *Timer) Expired() bool { return t.Expiry() <= 0 }

func (t *Timer) Owner() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.owner
}

func (t *Timer) SetOwner(id string) {
	t.mu.Lock()
	if !t.removed {
		t.owner = id
	}
	t.mu.Unlock()
}

func (t *Timer) IsOwner(id string) bool {
	return id != "" && t.Owner() == id
}

// SetRelease replaces the teardown func, e.g. once the underlying resource
// has actually been created.
func (t *Timer) SetRelease(fn func()) {
	t.mu.Lock()
	t.release = fn
	t.mu.Unlock()
}

func (t *Timer) DecrementCooldown() {
	t.mu.Lock()
	if t.cooldown > 0 {
		t.cooldown--
	}
	t.mu.Unlock()
}

// DecrementExpiry counts the expiry down by one, clamped at zero. Reaching
// zero removes the timer; calls after removal do nothing.
func (t *Timer) DecrementExpiry() {
	t.mu.Lock()
	if t.removed {
		t.mu.Unlock()
		return
	}
	if t.expiry > 0 {
		t.expiry--
	}
	hitZero := t.expiry == 0
	t.mu.Unlock()

	if hitZero {
		t.Remove()
	}
}

// Remove releases the timer's resource. It returns false while the timer is
// still active and on every call after the first successful one.
func (t *Timer) Remove() bool {
	t.mu.Lock()
	if t.removed || t.expiry > 0 {
		t.mu.Unlock()
		return false
	}
	release := t.release
	t.release = nil
	t.owner = ""
	t.removed = true
	t.mu.Unlock()

	if release != nil {
		if t.exec != nil {
			t.exec.Submit(release)
		} else {
			release()
		}
	}
	return true
}
