package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse("Rainbow Road:8:2, Bowser Castle:4 ,Moo Moo Meadows", 5, 3)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"Rainbow Road", "Bowser Castle", "Moo Moo Meadows"}, c.Names())

	rr, ok := c.Lookup("rainbow road")
	require.True(t, ok)
	assert.Equal(t, Track{Name: "Rainbow Road", Limit: 8, MinPlayers: 2}, rr)

	bc, _ := c.Lookup("Bowser Castle")
	assert.Equal(t, 4, bc.Limit)
	assert.Equal(t, 3, bc.MinPlayers)

	mm, _ := c.Lookup("  MOO MOO MEADOWS ")
	assert.Equal(t, 5, mm.Limit)
}

func TestParse_MinCappedAtLimit(t *testing.T) {
	c, err := Parse("Solo:1:4", 5, 2)
	require.NoError(t, err)
	tr, _ := c.Lookup("solo")
	assert.Equal(t, 1, tr.MinPlayers)
}

func TestParse_Errors(t *testing.T) {
	for _, raw := range []string{"", " , ", ":4", "A:x", "A:4:y", "A:0", "A:1:2:3"} {
		_, err := Parse(raw, 5, 2)
		assert.Error(t, err, raw)
	}
}

func TestNew_Duplicates(t *testing.T) {
	c := New(Track{Name: "A", Limit: 2}, Track{Name: "a", Limit: 6}, Track{Name: " "})
	assert.Equal(t, 1, c.Len())
	tr, ok := c.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 6, tr.Limit)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}
