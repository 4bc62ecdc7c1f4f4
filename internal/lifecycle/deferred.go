package lifecycle

import (
	"sync"

	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// Executor runs work on a context other than the caller's.
type Executor interface {
	Submit(task func())
}

// Deferred collects tasks and runs them when its owner calls Drain,
// usually at the start of a tick. Submit never blocks.
type Deferred struct {
	mu      sync.Mutex
	pending []func()
}

func NewDeferred() *Deferred {
	return &Deferred{}
}

func (d *Deferred) Submit(task func()) {
	if task == nil {
		return
	}
	d.mu.Lock()
	d.pending = append(d.pending, task)
	d.mu.Unlock()
}

// Pending returns how many tasks are waiting for the next Drain.
func (d *Deferred) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Drain runs every task queued so far on the calling goroutine and returns
// how many ran. Tasks submitted while draining wait for the next call.
func (d *Deferred) Drain() int {
	d.mu.Lock()
	tasks := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, task := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("[deferred] task panic: %v", r)
				}
			}()
			task()
		}()
	}
	return len(tasks)
}
