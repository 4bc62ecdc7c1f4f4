package matchmaking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/kart-queue-bot/internal/queue"
)

func TestRaces_ListOldestFirst(t *testing.T) {
	r := NewRaces()
	t0 := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	r.Put(Race{ID: "c", Track: "Rainbow Road", Started: t0.Add(2 * time.Minute)})
	r.Put(Race{ID: "b", Track: "Bowser Castle", Started: t0})
	r.Put(Race{ID: "a", Track: "Moo Moo Farm", Started: t0})

	var got []string
	for _, rc := range r.List() {
		got = append(got, rc.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 3, r.Count())

	rc, ok := r.Remove("b")
	require.True(t, ok)
	assert.Equal(t, "Bowser Castle", rc.Track)
	_, ok = r.Get("b")
	assert.False(t, ok)
	_, ok = r.Remove("b")
	assert.False(t, ok)
}

func TestRaces_ByPlayer(t *testing.T) {
	r := NewRaces()
	r.Put(Race{ID: "r1", Players: []queue.Player{{ID: "1"}, {ID: "2"}}})
	r.Put(Race{ID: "r2", Players: []queue.Player{{ID: "3"}}})

	rc, ok := r.ByPlayer("3")
	require.True(t, ok)
	assert.Equal(t, "r2", rc.ID)
	_, ok = r.ByPlayer("4")
	assert.False(t, ok)
}
