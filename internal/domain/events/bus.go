// Package events is a small typed in-process pub/sub bus. Subscribers are
// keyed by the event's Go type and run synchronously on the publisher's
// goroutine.
package events

import (
	"reflect"
	"sync"

	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

type subscriber struct {
	id int
	fn func(any)
}

var (
	mu     sync.RWMutex
	nextID int
	subs   = map[string][]subscriber{} // type name -> subs
)

func typeNameOf[T any]() string {
	var zero *T
	rt := reflect.TypeOf(zero).Elem() // *T -> T, no nil deref
	return rt.PkgPath() + "." + rt.Name()
}

// Subscribe registers fn for events of type T and returns its cancel func.
func Subscribe[T any](fn func(T)) func() {
	name := typeNameOf[T]()
	wrapped := func(v any) {
		if ev, ok := v.(T); ok {
			fn(ev)
		}
	}

	mu.Lock()
	nextID++
	id := nextID
	subs[name] = append(subs[name], subscriber{id: id, fn: wrapped})
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		ss := subs[name]
		for i, s := range ss {
			if s.id == id {
				subs[name] = append(ss[:i:i], ss[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every current subscriber of T. A panicking
// subscriber is logged and skipped.
func Publish[T any](ev T) {
	name := typeNameOf[T]()
	mu.RLock()
	ss := append([]subscriber(nil), subs[name]...)
	mu.RUnlock()
	for _, s := range ss {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("[bus] subscriber panic on %s: %v", name, r)
				}
			}()
			s.fn(ev)
		}()
	}
}

// Count returns how many subscribers T currently has.
func Count[T any]() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(subs[typeNameOf[T]()])
}
