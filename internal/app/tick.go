// internal/app/tick.go
package app

import (
	disc "github.com/jose-valero/kart-queue-bot/internal/adapters/discord"
	"github.com/jose-valero/kart-queue-bot/internal/ui"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// while a countdown is armed the queue message is refreshed this often
const countdownRefreshTicks = 10

// registerSteps wires the game loop. Order matters: deferred releases from
// the previous tick run first, then shells, then queues, then the UI.
func (b *Bot) registerSteps() {
	b.loop.Add("deferred", func() {
		if n := b.exec.Drain(); n > 0 {
			logger.Debugf("[tick] ran %d deferred releases", n)
			b.markDirty()
		}
	})
	b.loop.Add("powerups", func() {
		if n := b.Shells.Tick(); n > 0 {
			logger.Debugf("[tick] %d shells expired", n)
		}
	})
	b.loop.Add("queues", func() {
		if started := b.Service.Tick(); len(started) > 0 {
			b.markDirty()
		}
		if b.loop.Ticks()%countdownRefreshTicks == 0 && b.anyCountdown() {
			b.markDirty()
		}
	})
	b.loop.Add("ui", b.refreshUI)
}

func (b *Bot) anyCountdown() bool {
	for _, q := range b.Service.Queues().AllQueues() {
		if _, ok := b.Service.Countdown(q.ID()); ok {
			return true
		}
	}
	return false
}

func (b *Bot) markDirty() { b.uiDirty.Store(true) }

// refreshUI edits the public queue message when something changed and the
// edit budget allows it.
func (b *Bot) refreshUI() {
	if !b.uiDirty.Load() || !b.uiLimiter.Allow() {
		return
	}
	b.uiDirty.Store(false)

	qs := b.Service.Queues().AllQueues()
	emb := ui.RenderQueuesEmbed(qs, b.Service.Countdown, raceCards(b.Service.Races().List()))
	comps := ui.ComponentsForQueues(qs, b.Service.Catalog().Names())
	if err := disc.PublishOrEditQueueMessage(b.Sess, b.Cfg.QueueChannelID, emb, comps); err != nil {
		logger.Warnf("[ui] queue message: %v", err)
		b.markDirty()
	}
}
