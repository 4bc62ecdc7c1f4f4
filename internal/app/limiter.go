package app

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// userLimiter throttles commands per Discord user. Limiters of users idle
// for longer than the TTL are dropped; a refilled bucket loses nothing.
type userLimiter struct {
	mu    sync.Mutex
	every rate.Limit
	burst int
	users *ttlcache.Cache[string, *rate.Limiter]
}

const minLimiterIdle = time.Minute

func newUserLimiter(r rate.Limit, burst int) *userLimiter {
	if burst <= 0 {
		burst = 1
	}
	idle := minLimiterIdle
	if r > 0 {
		// long enough for an emptied bucket to refill completely
		if refill := time.Duration(float64(burst) / float64(r) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return newUserLimiterTTL(r, burst, idle)
}

func newUserLimiterTTL(r rate.Limit, burst int, idle time.Duration) *userLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &userLimiter{
		every: r,
		burst: burst,
		users: ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](idle)),
	}
}

func (l *userLimiter) Allow(userID string) bool {
	if l.every <= 0 {
		return true
	}
	l.mu.Lock()
	l.users.DeleteExpired()
	var lim *rate.Limiter
	if item := l.users.Get(userID); item != nil {
		lim = item.Value()
	} else {
		lim = rate.NewLimiter(l.every, l.burst)
		l.users.Set(userID, lim, ttlcache.DefaultTTL)
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Tracked is the number of users currently holding a limiter.
func (l *userLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.users.DeleteExpired()
	return l.users.Len()
}
