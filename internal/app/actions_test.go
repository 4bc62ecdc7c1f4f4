package app

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/kart-queue-bot/internal/matchmaking"
	"github.com/jose-valero/kart-queue-bot/internal/powerup"
	"github.com/jose-valero/kart-queue-bot/internal/queue"
	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/internal/track"
	"github.com/jose-valero/kart-queue-bot/pkg/config"
)

type nopHandle struct{}

func (nopHandle) Remove() {}

type fakeWorld struct{ drops int }

func (w *fakeWorld) Drop(powerup.Kind, powerup.Position) (powerup.Handle, error) {
	w.drops++
	return nopHandle{}, nil
}

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	cfg := &config.Config{
		QueueChannelID: "chan",
		Prefix:         "!",
		CommandRate:    1,
		CommandBurst:   3,
		Race: config.Race{
			Limit:           2,
			StartDelayTicks: 1,
			TickInterval:    time.Millisecond,
			DefaultMode:     "nonsense",
		},
	}
	cat := track.New(track.Track{Name: "Rainbow Road", Limit: 4, MinPlayers: 2})
	b := NewBot(nil, cfg, cat)
	b.world = &fakeWorld{}
	return b
}

func TestJoinLeave(t *testing.T) {
	b := newTestBot(t)

	msg := b.join("1", "mario", "rainbow road", race.Auto)
	assert.Contains(t, msg, "Joined **Rainbow Road** (Race) 1/4")
	assert.True(t, b.uiDirty.Load())

	assert.Equal(t, "You're already in a queue.", b.join("1", "mario", "Rainbow Road", race.Cup))
	assert.Equal(t, "⚠️ Unknown track.", b.join("2", "luigi", "Luigi Raceway", race.Auto))

	assert.Contains(t, b.leave("1"), "Left your queue on **Rainbow Road**")
	assert.Equal(t, "⚠️ You're not in any queue.", b.leave("1"))
	assert.Equal(t, "No queues yet.", b.summary())
}

func TestAdminActions(t *testing.T) {
	b := newTestBot(t)
	b.join("1", "mario", "Rainbow Road", race.Standard)
	b.join("2", "luigi", "Rainbow Road", race.Cup)

	assert.Contains(t, b.summary(), "• Rainbow Road • Cup 1/4")
	assert.Contains(t, b.kick("2"), "removed")
	assert.Equal(t, "✅ Cancelled 1 queue(s).", b.cancelTrack("Rainbow Road"))
	assert.Equal(t, "⚠️ No queues on that track.", b.cancelTrack("Rainbow Road"))

	q := b.Service.Queues()
	b.join("3", "peach", "Rainbow Road", race.Standard)
	all := q.AllQueues()
	require.Len(t, all, 1)
	assert.Equal(t, "✅ Queue cancelled.", b.cancelQueue(all[0].Track(), all[0].ID()))
	assert.Equal(t, "⚠️ That queue no longer exists.", b.cancelQueue(all[0].Track(), all[0].ID()))

	b.join("4", "toad", "Rainbow Road", race.Standard)
	assert.Equal(t, "✅ All queues cleared.", b.clearQueues())
	assert.Equal(t, 0, q.Len())
}

func TestRaceAndShells(t *testing.T) {
	b := newTestBot(t)
	assert.Equal(t, "⚠️ You're not in a race.", b.fireShell("1", "green"))

	b.join("1", "mario", "Rainbow Road", race.TimeTrial)
	started := b.Service.Tick()
	require.Len(t, started, 1)
	assert.Contains(t, b.join("1", "mario", "Rainbow Road", race.Auto), "already racing")

	assert.Equal(t, "⚠️ unknown shell \"banana\"", b.fireShell("1", "banana"))

	msg := b.fireShell("1", "blue")
	assert.Equal(t, "💥 Fired 1 blue shell(s).", msg, "blue shells come alone")
	assert.Equal(t, 1, b.Shells.Len())
	assert.True(t, strings.HasPrefix(b.fireShell("1", "red"), "⏳"))

	for i := 0; i < shellCooldownTicks; i++ {
		b.Shells.Tick()
	}
	assert.True(t, strings.HasPrefix(b.fireShell("1", "green"), "💥"))

	assert.Contains(t, b.finish(started[0].ID), "finished")
	assert.Equal(t, "⚠️ No race with that id.", b.finish(started[0].ID))
}

func TestFireShell_ConcurrentOncePerCooldown(t *testing.T) {
	b := newTestBot(t)
	for _, id := range []string{"1", "2", "3", "4"} {
		b.join(id, "racer"+id, "Rainbow Road", race.Standard)
	}
	require.Len(t, b.Service.Tick(), 1)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fired = map[string]int{}
	)
	for i := 0; i < 32; i++ {
		id := []string{"1", "2", "3", "4"}[i%4]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if strings.HasPrefix(b.fireShell(id, "green"), "💥") {
				mu.Lock()
				fired[id]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for _, id := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, 1, fired[id], "racer %s fires once per cooldown", id)
	}
	n := b.Shells.Len()
	assert.True(t, n >= 4 && n <= 12, "each volley drops 1 or 3 shells, got %d", n)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "⚠️ That queue is full, try again.", userMessage(queue.ErrFull))
	assert.Equal(t, "⚠️ No race with that id.", userMessage(matchmaking.ErrRaceNotFound))
	assert.Equal(t, "⚠️ That shell is already out.", userMessage(powerup.ErrAlreadyFired))
	assert.Equal(t, "⚠️ boom", userMessage(errors.New("boom")))
}

func TestRaceCards(t *testing.T) {
	at := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	cards := raceCards([]matchmaking.Race{{
		ID: "r1", Track: "Rainbow Road", Mode: race.TimeTrial, Started: at,
		Players: []queue.Player{{ID: "1", Username: "mario"}},
	}})
	require.Len(t, cards, 1)
	assert.Equal(t, "Time Trial", cards[0].Mode)
	assert.Equal(t, []string{"mario"}, cards[0].Players)
	assert.Equal(t, at, cards[0].Started)
}
