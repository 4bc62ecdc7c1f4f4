package app

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestUserLimiter_BurstPerUser(t *testing.T) {
	l := newUserLimiter(rate.Limit(0.001), 2)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("burst of 2 must pass")
	}
	if l.Allow("a") {
		t.Fatalf("third call inside the window must be throttled")
	}
	if !l.Allow("b") {
		t.Fatalf("users are throttled independently")
	}
}

func TestUserLimiter_DisabledWhenRateIsZero(t *testing.T) {
	l := newUserLimiter(0, 0)
	for i := 0; i < 10; i++ {
		if !l.Allow("a") {
			t.Fatalf("zero rate disables throttling")
		}
	}
}

func TestUserLimiter_IdleUsersExpire(t *testing.T) {
	l := newUserLimiterTTL(rate.Limit(0.001), 1, 30*time.Millisecond)

	if !l.Allow("a") || l.Allow("a") {
		t.Fatalf("burst of 1 must pass once")
	}
	l.Allow("b")
	if l.Tracked() != 2 {
		t.Fatalf("want 2 tracked users, got %d", l.Tracked())
	}

	time.Sleep(80 * time.Millisecond)
	if l.Tracked() != 0 {
		t.Fatalf("idle users must be dropped, got %d", l.Tracked())
	}
	if !l.Allow("a") {
		t.Fatalf("an expired user starts with a full bucket")
	}
}

func TestUserLimiter_IdleCoversRefill(t *testing.T) {
	l := newUserLimiter(rate.Limit(0.01), 3)
	l.Allow("a")
	item := l.users.Get("a")
	if item == nil {
		t.Fatal("a must be tracked")
	}
	if got := item.TTL(); got != 300*time.Second {
		t.Fatalf("want 300s idle, got %s", got)
	}
}
