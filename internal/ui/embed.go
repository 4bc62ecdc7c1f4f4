package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/jose-valero/kart-queue-bot/internal/queue"
)

// RaceCard is the embed view of a race in progress.
type RaceCard struct {
	ID      string
	Track   string
	Mode    string
	Started time.Time
	Players []string
}

// CountdownFunc reports the ticks left before a queue starts, if armed.
type CountdownFunc func(id uuid.UUID) (int, bool)

func buildQueuesDescription(qs []*queue.RaceQueue, countdown CountdownFunc) string {
	if len(qs) == 0 {
		return "No queues yet. Use `/race join` to open one."
	}
	var b strings.Builder
	current := ""
	n := 0
	for _, q := range qs {
		if q.Track() != current {
			if current != "" {
				b.WriteString("\n")
			}
			current, n = q.Track(), 0
			fmt.Fprintf(&b, "__**%s**__\n", current)
		}
		n++
		fmt.Fprintf(&b, "**#%d %s** (%d/%d)", n, q.Mode().Label(), q.Len(), q.Limit())
		if countdown != nil {
			if left, ok := countdown(q.ID()); ok {
				fmt.Fprintf(&b, " ⏳ %d", left)
			}
		}
		b.WriteString("\n")

		players := q.Players()
		if len(players) == 0 {
			b.WriteString("_(empty)_\n")
			continue
		}
		for i, p := range players {
			fmt.Fprintf(&b, "%d) %s\n", i+1, p.Username)
		}
	}
	return b.String()
}

// compact card of a race (inline column)
func raceField(c RaceCard) *discordgo.MessageEmbedField {
	name := fmt.Sprintf("#%s • %s • %s • ⏱ %s",
		shortID(c.ID), safe(c.Track), safe(c.Mode), humanSince(c.Started))

	val := quoteBlock(bulletList(c.Players, 8)) + "\n\u200B"

	return &discordgo.MessageEmbedField{
		Name:   name,
		Value:  val,
		Inline: true, // 2 columns
	}
}

// ---------- main embed (just one) ----------
func RenderQueuesEmbed(qs []*queue.RaceQueue, countdown CountdownFunc, races []RaceCard) *discordgo.MessageEmbed {
	color := 0x808080
	if len(qs) > 0 {
		color = 0x57F287
	}

	emb := &discordgo.MessageEmbed{
		Title:       queueTitle(len(qs)),
		Description: buildQueuesDescription(qs, countdown),
		Color:       color,
	}

	emb.Fields = append(emb.Fields, &discordgo.MessageEmbedField{
		Name:   "Races in progress",
		Value:  "\u200B",
		Inline: false,
	})

	if len(races) == 0 {
		emb.Fields = append(emb.Fields, &discordgo.MessageEmbedField{
			Name:   "\u200B",
			Value:  "_None right now_",
			Inline: false,
		})
		return emb
	}

	// max 4 races
	limit := min(len(races), 4)
	for i := 0; i < limit; i++ {
		emb.Fields = append(emb.Fields, raceField(races[i]))
	}
	if rest := len(races) - limit; rest > 0 {
		emb.Fields = append(emb.Fields, &discordgo.MessageEmbedField{
			Name:   "\u200B",
			Value:  fmt.Sprintf("_…and %d more_", rest),
			Inline: false,
		})
	}

	return emb
}

// RenderRaceStarted is the announcement posted when a race leaves its queue.
func RenderRaceStarted(c RaceCard) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏁 %s • %s", safe(c.Track), safe(c.Mode)),
		Description: bulletList(c.Players, 0),
		Color:       0xFEE75C,
		Footer:      &discordgo.MessageEmbedFooter{Text: "race " + c.ID},
		Timestamp:   c.Started.UTC().Format(time.RFC3339),
	}
}
