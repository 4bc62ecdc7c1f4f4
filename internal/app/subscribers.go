// internal/app/subscribers.go
package app

import (
	"fmt"
	"strings"

	events "github.com/jose-valero/kart-queue-bot/internal/domain/events"
	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/internal/ui"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// StartEventSubscribers hooks the bot onto the bus and returns the func that
// unhooks it.
func (b *Bot) StartEventSubscribers() func() {
	cancels := []func(){
		// ---------- RACE STARTED ----------
		events.Subscribe(func(ev events.RaceStarted) {
			b.markDirty()
			b.announce.Embed("start", ev.RaceID, ui.RenderRaceStarted(ui.RaceCard{
				ID:      ev.RaceID,
				Track:   ev.Track,
				Mode:    race.Mode(ev.Mode).Label(),
				Started: ev.At,
				Players: ev.Players,
			}))
		}),

		// ---------- RACE FINISHED ----------
		events.Subscribe(func(ev events.RaceFinished) {
			b.markDirty()
			b.announce.Text("finish", ev.RaceID, fmt.Sprintf("🏆 Race on **%s** finished.", ev.Track))
		}),

		// ---------- QUEUE CANCELLED ----------
		events.Subscribe(func(ev events.QueueCancelled) {
			b.markDirty()
			if ev.Reason != "empty" {
				b.announce.Text("cancel", ev.QueueID, fmt.Sprintf("🚫 A queue on **%s** was %s.", ev.Track, strings.ToLower(ev.Reason)))
			}
		}),
	}

	logger.Infof("[bus] subscribers registered: RaceStarted=%d RaceFinished=%d QueueCancelled=%d",
		events.Count[events.RaceStarted](),
		events.Count[events.RaceFinished](),
		events.Count[events.QueueCancelled](),
	)

	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
