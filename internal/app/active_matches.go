package app

import (
	"github.com/jose-valero/kart-queue-bot/internal/matchmaking"
	"github.com/jose-valero/kart-queue-bot/internal/ui"
)

// raceCards maps races in progress to their embed cards, oldest first.
func raceCards(rs []matchmaking.Race) []ui.RaceCard {
	out := make([]ui.RaceCard, 0, len(rs))
	for _, rc := range rs {
		out = append(out, raceCard(rc))
	}
	return out
}

func raceCard(rc matchmaking.Race) ui.RaceCard {
	names := make([]string, 0, len(rc.Players))
	for _, p := range rc.Players {
		names = append(names, p.Username)
	}
	return ui.RaceCard{
		ID:      rc.ID,
		Track:   rc.Track,
		Mode:    rc.Mode.Label(),
		Started: rc.Started,
		Players: names,
	}
}
