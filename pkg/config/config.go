package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Token   string
	AppID   string
	GuildID string
	Prefix  string

	// channel where the queue UI lives and race starts are announced
	QueueChannelID string

	// roles allowed to run admin actions besides Administrator
	AdminRoleIDs []string

	Race Race

	// per-user command throttle
	CommandRate  float64
	CommandBurst int

	LogLevel  string
	LogFormat string
}

type Race struct {
	Tracks          string        // "Name:limit[:min],..."
	TargetPlayers   int           // default queue capacity
	MinPlayers      int           // default players needed to arm the countdown
	Limit           int           // max concurrent races
	TickInterval    time.Duration // tick driver period
	StartDelayTicks int           // countdown length once MinPlayers is reached
	DefaultMode     string        // mode used when "auto" has to create a queue
}

// Load reads the configuration from the environment (.env in development).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Token:          os.Getenv("DISCORD_BOT_TOKEN"),
		AppID:          os.Getenv("DISCORD_APP_ID"),
		GuildID:        os.Getenv("DISCORD_GUILD_ID"),
		Prefix:         firstNonEmpty(os.Getenv("DISCORD_PREFIX"), "!"),
		QueueChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		AdminRoleIDs:   splitList(os.Getenv("ADMIN_ROLE_IDS")),
		LogLevel:       firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:      firstNonEmpty(os.Getenv("LOG_FORMAT"), "console"),
	}

	var err error
	if cfg.Race, err = raceFromEnv(); err != nil {
		return nil, err
	}
	if cfg.CommandBurst, err = intEnv("COMMAND_BURST", 3); err != nil {
		return nil, err
	}
	if cfg.CommandRate, err = floatEnv("COMMAND_RATE", 1); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadRace reads only the race settings, for tooling that does not talk to
// Discord.
func LoadRace() (Race, error) {
	_ = godotenv.Load()
	r, err := raceFromEnv()
	if err != nil {
		return Race{}, err
	}
	if r.TargetPlayers <= 0 {
		return Race{}, errors.New("RACE_TARGET_PLAYERS must be positive")
	}
	return r, nil
}

func raceFromEnv() (Race, error) {
	r := Race{
		Tracks:      firstNonEmpty(os.Getenv("RACE_TRACKS"), "Rainbow Road:8:2"),
		DefaultMode: firstNonEmpty(os.Getenv("RACE_DEFAULT_MODE"), "race"),
	}

	var err error
	if r.TargetPlayers, err = intEnv("RACE_TARGET_PLAYERS", 5); err != nil {
		return Race{}, err
	}
	if r.MinPlayers, err = intEnv("RACE_MIN_PLAYERS", 2); err != nil {
		return Race{}, err
	}
	if r.Limit, err = intEnv("RACE_LIMIT", 3); err != nil {
		return Race{}, err
	}
	if r.StartDelayTicks, err = intEnv("RACE_START_DELAY_TICKS", 20); err != nil {
		return Race{}, err
	}
	if r.TickInterval, err = durationEnv("RACE_TICK_INTERVAL", 500*time.Millisecond); err != nil {
		return Race{}, err
	}
	return r, nil
}

func (c *Config) validate() error {
	if c.Token == "" {
		return errors.New("missing DISCORD_BOT_TOKEN")
	}
	if c.AppID == "" {
		return errors.New("missing DISCORD_APP_ID")
	}
	if c.GuildID == "" {
		return errors.New("missing DISCORD_GUILD_ID")
	}
	if c.QueueChannelID == "" {
		return errors.New("missing DISCORD_CHANNEL_ID")
	}
	if c.Race.TargetPlayers <= 0 {
		return errors.New("RACE_TARGET_PLAYERS must be positive")
	}
	if c.Race.Limit <= 0 {
		return errors.New("RACE_LIMIT must be positive")
	}
	if c.Race.TickInterval <= 0 {
		return errors.New("RACE_TICK_INTERVAL must be positive")
	}
	if c.Race.StartDelayTicks < 0 {
		return errors.New("RACE_START_DELAY_TICKS must not be negative")
	}
	return nil
}

func firstNonEmpty(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return f, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}

func (c *Config) Redacted() string {
	tok := "[set]"
	if c.Token == "" {
		tok = "[empty]"
	}
	return fmt.Sprintf(
		"appID=%s guildID=%s prefix=%q queueChannelID=%s tracks=%q raceLimit=%d tick=%s token=%s",
		c.AppID, c.GuildID, c.Prefix, c.QueueChannelID, c.Race.Tracks, c.Race.Limit, c.Race.TickInterval, tok,
	)
}
