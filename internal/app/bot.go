package app

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	disc "github.com/jose-valero/kart-queue-bot/internal/adapters/discord"
	"github.com/jose-valero/kart-queue-bot/internal/lifecycle"
	"github.com/jose-valero/kart-queue-bot/internal/matchmaking"
	"github.com/jose-valero/kart-queue-bot/internal/powerup"
	"github.com/jose-valero/kart-queue-bot/internal/queue"
	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/internal/tick"
	"github.com/jose-valero/kart-queue-bot/internal/track"
	"github.com/jose-valero/kart-queue-bot/pkg/config"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

type Bot struct {
	Sess    *discordgo.Session
	Cfg     *config.Config
	Service *matchmaking.Service
	Shells  *powerup.Set

	exec     *lifecycle.Deferred
	loop     *tick.Driver
	policy   *disc.Policy
	announce *disc.Announcer
	world    powerup.World
	limiter  *userLimiter

	// shellMu guards rng and the cooldown check in fireShell
	shellMu sync.Mutex
	rng     *rand.Rand

	// queue message edits are throttled; changes in between just mark it dirty
	uiDirty   atomic.Bool
	uiLimiter *rate.Limiter

	cancelBus func()
}

func NewBot(s *discordgo.Session, cfg *config.Config, cat *track.Catalog) *Bot {
	mode, err := race.ParseMode(cfg.Race.DefaultMode)
	if err != nil || !mode.Concrete() {
		logger.Warnf("[app] RACE_DEFAULT_MODE %q is not a concrete mode, using %s", cfg.Race.DefaultMode, race.Standard)
		mode = race.Standard
	}

	exec := lifecycle.NewDeferred()
	b := &Bot{
		Sess: s,
		Cfg:  cfg,
		Service: matchmaking.New(queue.NewManager(), cat, exec, matchmaking.Config{
			RaceLimit:       cfg.Race.Limit,
			StartDelayTicks: cfg.Race.StartDelayTicks,
			DefaultMode:     mode,
		}),
		Shells:    powerup.NewSet(),
		exec:      exec,
		loop:      tick.New(tick.WithInterval(cfg.Race.TickInterval)),
		policy:    disc.NewPolicy(cfg.AdminRoleIDs),
		announce:  disc.NewAnnouncer(s, cfg.QueueChannelID),
		world:     disc.NewShellWorld(s, cfg.QueueChannelID),
		limiter:   newUserLimiter(rate.Limit(cfg.CommandRate), cfg.CommandBurst),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		uiLimiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
	b.registerSteps()
	return b
}

func (b *Bot) RegisterHandlers() {
	// 1) interaction router (slash/buttons/selects)
	b.Sess.AddHandler(b.HandleInteraction)

	// 2) prefix commands typed in the queue channel
	b.Sess.AddHandler(b.HandleMessageCreate)

	// 3) bus subscribers: announce races, refresh the queue message
	b.cancelBus = b.StartEventSubscribers()
}

// Run registers the slash commands, posts the queue message and drives the
// tick loop until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := RegisterCommands(b.Sess, b.Cfg.AppID, b.Cfg.GuildID, b.Service.Catalog()); err != nil {
		return err
	}
	b.markDirty()
	b.refreshUI()
	return b.loop.Run(ctx)
}

func (b *Bot) Stop() {
	if b.cancelBus != nil {
		b.cancelBus()
	}
}
