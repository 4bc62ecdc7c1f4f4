package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracksCommand(t *testing.T) {
	t.Setenv("RACE_TRACKS", "Rainbow Road:8:2, Moo Moo Farm")
	t.Setenv("RACE_TARGET_PLAYERS", "4")
	t.Setenv("RACE_MIN_PLAYERS", "3")

	var out bytes.Buffer
	c := Tracks{Out: &out}.Command()
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"TRACK", "LIMIT", "MIN"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Rainbow", "Road", "8", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Moo", "Moo", "Farm", "4", "3"}, strings.Fields(lines[2]))
}

func TestTracksCommand_BadCatalog(t *testing.T) {
	t.Setenv("RACE_TRACKS", "Rainbow Road:lots")
	c := Tracks{Out: &bytes.Buffer{}}.Command()
	c.SetArgs([]string{})
	c.SilenceUsage = true
	c.SilenceErrors = true
	assert.Error(t, c.Execute())
}
