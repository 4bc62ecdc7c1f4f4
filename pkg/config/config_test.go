package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "secret")
	t.Setenv("DISCORD_APP_ID", "app")
	t.Setenv("DISCORD_GUILD_ID", "guild")
	t.Setenv("DISCORD_CHANNEL_ID", "chan")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, 5, cfg.Race.TargetPlayers)
	assert.Equal(t, 2, cfg.Race.MinPlayers)
	assert.Equal(t, 3, cfg.Race.Limit)
	assert.Equal(t, 20, cfg.Race.StartDelayTicks)
	assert.Equal(t, 500*time.Millisecond, cfg.Race.TickInterval)
	assert.Equal(t, "race", cfg.Race.DefaultMode)
	assert.Equal(t, 1.0, cfg.CommandRate)
	assert.Equal(t, 3, cfg.CommandBurst)
	assert.NotContains(t, cfg.Redacted(), "secret")
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RACE_TRACKS", "A:4,B:6:3")
	t.Setenv("RACE_LIMIT", "7")
	t.Setenv("RACE_TICK_INTERVAL", "2s")
	t.Setenv("ADMIN_ROLE_IDS", " 111, ,222")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "A:4,B:6:3", cfg.Race.Tracks)
	assert.Equal(t, 7, cfg.Race.Limit)
	assert.Equal(t, 2*time.Second, cfg.Race.TickInterval)
	assert.Equal(t, []string{"111", "222"}, cfg.AdminRoleIDs)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"RACE_LIMIT":          "zero",
		"RACE_TICK_INTERVAL":  "soon",
		"RACE_TARGET_PLAYERS": "0",
		"COMMAND_RATE":        "fast",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_MissingToken(t *testing.T) {
	setRequired(t)
	t.Setenv("DISCORD_BOT_TOKEN", "")
	_, err := FromEnv()
	assert.EqualError(t, err, "missing DISCORD_BOT_TOKEN")
}

func TestLoadRace_NoDiscordSettingsNeeded(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	t.Setenv("RACE_TRACKS", "Moo Moo Farm:6")

	r, err := LoadRace()
	require.NoError(t, err)
	assert.Equal(t, "Moo Moo Farm:6", r.Tracks)
	assert.Equal(t, 5, r.TargetPlayers)

	t.Setenv("RACE_TARGET_PLAYERS", "-1")
	_, err = LoadRace()
	assert.Error(t, err)
}
