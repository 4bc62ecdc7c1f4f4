package command

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jose-valero/kart-queue-bot/internal/app"
	"github.com/jose-valero/kart-queue-bot/internal/track"
	"github.com/jose-valero/kart-queue-bot/pkg/config"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

type Run struct{}

func (cmd Run) Command(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "connect to Discord and serve the race queues",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.main(ctx)
		},
	}
}

func (cmd Run) main(ctx context.Context) error {
	// read and validate the config (.env during development)
	cfg, err := config.Load()
	if err != nil {
		return pkgerrors.Wrap(err, "run: config")
	}
	if err := logger.Setup(cfg.LogFormat, cfg.LogLevel); err != nil {
		return pkgerrors.Wrap(err, "run: logger")
	}
	defer logger.Sync()

	cat, err := track.Parse(cfg.Race.Tracks, cfg.Race.TargetPlayers, cfg.Race.MinPlayers)
	if err != nil {
		return pkgerrors.Wrap(err, "run: tracks")
	}

	// the prefix "Bot " is required for bot tokens
	sess, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return pkgerrors.Wrap(err, "run: discord session")
	}
	sess.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages | // MessageCreate in the queue channel
		discordgo.IntentsMessageContent // prefix commands

	// wiring stays in the app layer, separate from the domain
	b := app.NewBot(sess, cfg, cat)
	b.RegisterHandlers()
	defer b.Stop()

	if err := sess.Open(); err != nil {
		return pkgerrors.Wrap(err, "run: open gateway")
	}
	defer sess.Close()

	logger.Infof("🤖 bot ready - %s (%d tracks)", cfg.Redacted(), cat.Len())

	// blocks until SIGINT/SIGTERM
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(err, "run")
	}
	logger.Infof("shutting down")
	return nil
}
