// Package tick runs the game loop: every interval it advances each registered
// step in order on a single goroutine.
package tick

import (
	"context"
	"sync"
	"time"

	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

type Step struct {
	Name string
	Fn   func()
}

type Option func(*Driver)

// WithInterval sets the tick period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

// Driver owns the tick goroutine. Steps run in registration order and a
// panicking step does not stop the ones after it.
type Driver struct {
	interval time.Duration

	mu    sync.Mutex
	steps []Step
	ticks uint64
}

func New(opts ...Option) *Driver {
	d := &Driver{interval: 500 * time.Millisecond}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Interval() time.Duration { return d.interval }

// Add appends a step. Steps added while running take effect on the next tick.
func (d *Driver) Add(name string, fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.steps = append(d.steps, Step{Name: name, Fn: fn})
	d.mu.Unlock()
}

// Ticks returns how many ticks have completed.
func (d *Driver) Ticks() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

// Once runs a single tick on the calling goroutine.
func (d *Driver) Once() {
	d.mu.Lock()
	steps := append([]Step(nil), d.steps...)
	d.mu.Unlock()

	for _, s := range steps {
		runStep(s)
	}

	d.mu.Lock()
	d.ticks++
	d.mu.Unlock()
}

// Run ticks until ctx is done and returns ctx's error.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	logger.Infof("[tick] loop started (every %s)", d.interval)
	for {
		select {
		case <-ctx.Done():
			logger.Infof("[tick] loop stopped after %d ticks", d.Ticks())
			return ctx.Err()
		case <-ticker.C:
			d.Once()
		}
	}
}

func runStep(s Step) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[tick] step %s panic: %v", s.Name, r)
		}
	}()
	s.Fn()
}
