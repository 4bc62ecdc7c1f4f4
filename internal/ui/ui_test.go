package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/kart-queue-bot/internal/queue"
	"github.com/jose-valero/kart-queue-bot/internal/race"
)

func mkQueue(t *testing.T, track string, mode race.Mode, limit int, players ...string) *queue.RaceQueue {
	t.Helper()
	q, err := queue.NewRaceQueue(track, mode, limit)
	require.NoError(t, err)
	for _, p := range players {
		require.NoError(t, q.Add(queue.Player{ID: p, Username: "user-" + p}))
	}
	return q
}

func TestRenderQueuesEmbed_Empty(t *testing.T) {
	emb := RenderQueuesEmbed(nil, nil, nil)
	assert.Contains(t, emb.Title, "idle")
	assert.Contains(t, emb.Description, "/race join")
	require.Len(t, emb.Fields, 2)
	assert.Equal(t, "_None right now_", emb.Fields[1].Value)
}

func TestRenderQueuesEmbed_GroupsByTrack(t *testing.T) {
	a := mkQueue(t, "Rainbow Road", race.Standard, 4, "1", "2")
	b := mkQueue(t, "Rainbow Road", race.Cup, 4)
	c := mkQueue(t, "Bowser Castle", race.TimeTrial, 1, "3")

	countdown := func(id uuid.UUID) (int, bool) { return 7, id == a.ID() }
	emb := RenderQueuesEmbed([]*queue.RaceQueue{a, b, c}, countdown, nil)

	d := emb.Description
	assert.Equal(t, 1, strings.Count(d, "__**Rainbow Road**__"))
	assert.Contains(t, d, "**#1 Race** (2/4) ⏳ 7")
	assert.Contains(t, d, "**#2 Cup** (0/4)\n_(empty)_")
	assert.Contains(t, d, "**#1 Time Trial** (1/1)\n1) user-3")
	assert.Less(t, strings.Index(d, "Rainbow Road"), strings.Index(d, "Bowser Castle"))
	assert.Contains(t, emb.Title, "3 queues open")
}

func TestRenderQueuesEmbed_RacesCapped(t *testing.T) {
	var races []RaceCard
	for i := 0; i < 6; i++ {
		races = append(races, RaceCard{ID: fmt.Sprintf("race-%d", i), Track: "Rainbow Road", Mode: "Race", Started: time.Now()})
	}
	emb := RenderQueuesEmbed(nil, nil, races)
	// header + 4 cards + overflow note
	require.Len(t, emb.Fields, 6)
	assert.Equal(t, "_…and 2 more_", emb.Fields[5].Value)
	assert.True(t, emb.Fields[1].Inline)
}

func TestComponentsForQueues(t *testing.T) {
	comps := ComponentsForQueues(nil, nil)
	require.Len(t, comps, 1, "leave button only")

	a := mkQueue(t, "Rainbow Road", race.Standard, 4, "1")
	comps = ComponentsForQueues([]*queue.RaceQueue{a}, []string{"Rainbow Road", "Bowser Castle"})
	require.Len(t, comps, 4)

	cancel := comps[2].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, CancelMenuID, cancel.CustomID)
	require.Len(t, cancel.Options, 1)
	tr, id, err := ParseCancelValue(cancel.Options[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "Rainbow Road", tr)
	assert.Equal(t, a.ID(), id)

	kick := comps[3].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, "uid:1", kick.Options[0].Value)
}

func TestKickOptionsCapped(t *testing.T) {
	var qs []*queue.RaceQueue
	for i := 0; i < 4; i++ {
		var ps []string
		for j := 0; j < 8; j++ {
			ps = append(ps, fmt.Sprintf("%d-%d", i, j))
		}
		qs = append(qs, mkQueue(t, "Rainbow Road", race.Standard, 8, ps...))
	}
	assert.Len(t, kickOptions(qs), maxOptions)
}

func TestParseCancelValue_Rejects(t *testing.T) {
	for _, v := range []string{"", "|" + uuid.NewString(), "Rainbow Road|nope", "Rainbow Road"} {
		_, _, err := ParseCancelValue(v)
		assert.Error(t, err, v)
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "—", safe(" - "))
	assert.Equal(t, "> a\n> b", quoteBlock("a\nb"))
	assert.Equal(t, "• x\n• y", bulletList([]string{"x", "y", "z"}, 2))
	assert.Equal(t, "just now", humanSince(time.Now()))
	assert.Equal(t, "unknown", humanSince(time.Time{}))
	assert.Equal(t, "45678901", shortID("2abc345678901"))
}
