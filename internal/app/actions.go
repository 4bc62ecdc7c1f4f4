package app

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jose-valero/kart-queue-bot/internal/lifecycle"
	"github.com/jose-valero/kart-queue-bot/internal/matchmaking"
	"github.com/jose-valero/kart-queue-bot/internal/powerup"
	"github.com/jose-valero/kart-queue-bot/internal/queue"
	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// shells stay on the track for lifecycle.DefaultExpiry ticks; a racer can
// fire again once this many ticks have passed
const shellCooldownTicks = 6

// Actions shared by slash commands, components and prefix commands. Each
// returns the reply shown to the user.

func (b *Bot) join(userID, username, trackName string, mode race.Mode) string {
	if _, racing := b.Service.Races().ByPlayer(userID); racing {
		return "🏎️ You're already racing. Wait for it to finish."
	}
	q, err := b.Service.Join(trackName, mode, queue.Player{ID: userID, Username: username})
	if err != nil {
		return userMessage(err)
	}
	b.markDirty()
	return fmt.Sprintf("🙌 Joined **%s** (%s) %d/%d.", q.Track(), q.Mode().Label(), q.Len(), q.Limit())
}

func (b *Bot) leave(userID string) string {
	q, err := b.Service.Leave(userID)
	if err != nil {
		return userMessage(err)
	}
	b.markDirty()
	return fmt.Sprintf("👋 Left your queue on **%s**.", q.Track())
}

func (b *Bot) kick(userID string) string {
	q, err := b.Service.Kick(userID)
	if err != nil {
		return userMessage(err)
	}
	b.markDirty()
	return fmt.Sprintf("✅ Player removed from **%s**.", q.Track())
}

func (b *Bot) cancelQueue(trackName string, id uuid.UUID) string {
	if !b.Service.Cancel(trackName, id) {
		return "⚠️ That queue no longer exists."
	}
	b.markDirty()
	return "✅ Queue cancelled."
}

func (b *Bot) cancelTrack(trackName string) string {
	n := b.Service.CancelTrack(trackName)
	if n == 0 {
		return "⚠️ No queues on that track."
	}
	b.markDirty()
	return fmt.Sprintf("✅ Cancelled %d queue(s).", n)
}

func (b *Bot) clearQueues() string {
	b.Service.ClearAll()
	b.markDirty()
	return "✅ All queues cleared."
}

func (b *Bot) finish(raceID string) string {
	rc, err := b.Service.Finish(raceID)
	if err != nil {
		return userMessage(err)
	}
	b.markDirty()
	return fmt.Sprintf("🏁 Race on **%s** finished.", rc.Track)
}

// fireShell drops the shells rolled from an item box into the racer's race.
func (b *Bot) fireShell(userID, kindName string) string {
	if _, racing := b.Service.Races().ByPlayer(userID); !racing {
		return "⚠️ You're not in a race."
	}

	b.shellMu.Lock()
	defer b.shellMu.Unlock()
	for _, sh := range b.Shells.OwnedBy(userID) {
		if sh.OnCooldown() {
			return fmt.Sprintf("⏳ Wait %d more ticks.", sh.Cooldown())
		}
	}
	kind, err := powerup.ParseKind(kindName)
	if err != nil {
		return userMessage(err)
	}

	newShell := func() *powerup.Shell {
		return powerup.NewShell(kind, b.exec,
			lifecycle.WithExpiry(lifecycle.DefaultExpiry),
			lifecycle.WithCooldown(shellCooldownTicks),
		)
	}
	first := newShell()
	qty := first.Quantity(b.rng)
	lap := float64(1 + b.rng.Intn(3))

	fired := 0
	for i := 0; i < qty; i++ {
		sh := first
		if i > 0 {
			sh = newShell()
		}
		if err := sh.Spawn(b.world, powerup.Position{X: lap}, userID); err != nil {
			logger.Warnf("[shell] spawn %s for %s: %v", kind, userID, err)
			break
		}
		b.Shells.Add(sh)
		fired++
	}
	if fired == 0 {
		return "⚠️ Could not fire that shell."
	}
	return fmt.Sprintf("💥 Fired %d %s shell(s).", fired, kind)
}

// userMessage maps domain errors to the reply text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, queue.ErrAlreadyIn):
		return "You're already in a queue."
	case errors.Is(err, queue.ErrNotIn):
		return "⚠️ You're not in any queue."
	case errors.Is(err, queue.ErrFull):
		return "⚠️ That queue is full, try again."
	case errors.Is(err, matchmaking.ErrUnknownTrack):
		return "⚠️ Unknown track."
	case errors.Is(err, matchmaking.ErrRaceNotFound):
		return "⚠️ No race with that id."
	case errors.Is(err, powerup.ErrAlreadyFired):
		return "⚠️ That shell is already out."
	}
	return "⚠️ " + err.Error()
}
