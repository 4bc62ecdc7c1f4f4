package lifecycle

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Defaults(t *testing.T) {
	tm := NewTimer(nil)
	assert.Equal(t, DefaultCooldown, tm.Cooldown())
	assert.Equal(t, DefaultExpiry, tm.Expiry())
	assert.Equal(t, Active, tm.State())
	assert.False(t, tm.OnCooldown())
}

func TestTimer_CooldownClampsAtZero(t *testing.T) {
	tm := NewTimer(nil, WithCooldown(2))
	require.True(t, tm.OnCooldown())

	for i := 0; i < 5; i++ {
		tm.DecrementCooldown()
	}
	assert.Equal(t, 0, tm.Cooldown())
	assert.Equal(t, Active, tm.State(), "cooldown never changes state")

	tm.SetCooldown(-3)
	assert.Equal(t, 0, tm.Cooldown())
	tm.SetCooldown(4)
	assert.True(t, tm.OnCooldown())
}

func TestTimer_RemoveRefusedWhileActive(t *testing.T) {
	var released int32
	tm := NewTimer(nil, WithExpiry(3), WithOwner("mario"), WithRelease(func() {
		atomic.AddInt32(&released, 1)
	}))

	assert.False(t, tm.Remove())
	assert.Equal(t, "mario", tm.Owner())
	assert.Equal(t, int32(0), atomic.LoadInt32(&released))
}

func TestTimer_ExpiryReleasesExactlyOnce(t *testing.T) {
	d := NewDeferred()
	var released int32
	const expiry = 5
	tm := NewTimer(d, WithExpiry(expiry), WithOwner("luigi"), WithRelease(func() {
		atomic.AddInt32(&released, 1)
	}))

	for i := 0; i < expiry-1; i++ {
		tm.DecrementExpiry()
		require.Equal(t, Active, tm.State())
	}
	tm.DecrementExpiry()

	assert.Equal(t, Removed, tm.State())
	assert.Equal(t, "", tm.Owner())
	assert.Equal(t, 0, tm.Expiry())

	// the release is deferred until the executor drains
	assert.Equal(t, int32(0), atomic.LoadInt32(&released))
	assert.Equal(t, 1, d.Pending())
	assert.Equal(t, 1, d.Drain())
	assert.Equal(t, int32(1), atomic.LoadInt32(&released))

	for i := 0; i < 10; i++ {
		tm.DecrementExpiry()
	}
	assert.False(t, tm.Remove())
	assert.Equal(t, 0, d.Drain())
	assert.Equal(t, int32(1), atomic.LoadInt32(&released))
}

func TestTimer_ZeroExpiryRemovesOnFirstCall(t *testing.T) {
	var released int32
	tm := NewTimer(nil, WithExpiry(0), WithRelease(func() { atomic.AddInt32(&released, 1) }))
	assert.Equal(t, Expired, tm.State())

	assert.True(t, tm.Remove())
	assert.False(t, tm.Remove())
	assert.Equal(t, int32(1), atomic.LoadInt32(&released))
}

func TestTimer_SettersIgnoredAfterRemoval(t *testing.T) {
	tm := NewTimer(nil, WithExpiry(1), WithOwner("peach"))
	tm.DecrementExpiry()
	require.Equal(t, Removed, tm.State())

	tm.SetOwner("bowser")
	tm.SetExpiry(10)
	assert.Equal(t, "", tm.Owner())
	assert.Equal(t, Removed, tm.State())
}

func TestTimer_ConcurrentDecrements_SingleRelease(t *testing.T) {
	d := NewDeferred()
	var released int32
	tm := NewTimer(d, WithExpiry(50), WithRelease(func() { atomic.AddInt32(&released, 1) }))

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				tm.DecrementExpiry()
				tm.DecrementCooldown()
			}
		}()
	}
	wg.Wait()
	d.Drain()

	assert.Equal(t, Removed, tm.State())
	assert.Equal(t, int32(1), atomic.LoadInt32(&released))
}
