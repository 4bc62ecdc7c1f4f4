// internal/app/router.go
package app

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	d "github.com/jose-valero/kart-queue-bot/internal/adapters/discord"
	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/internal/ui"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

func (b *Bot) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if ch := b.Cfg.QueueChannelID; ch != "" && i.ChannelID != ch {
		_ = d.SendEphemeral(s, i, "Use this in the designated queue channel.")
		return
	}
	u := d.UserOf(i)
	if u == nil {
		_ = d.SendEphemeral(s, i, "⚠️ Could not identify you.")
		return
	}
	if !b.limiter.Allow(u.ID) {
		_ = d.SendEphemeral(s, i, "🐢 Slow down a little.")
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSlash(s, i, u)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i, u)
	}
}

// ------------------- Slash -------------------

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	out := make(map[string]string, len(opts))
	for _, o := range opts {
		out[o.Name] = fmt.Sprint(o.Value)
	}
	return out
}

func (b *Bot) handleSlash(s *discordgo.Session, i *discordgo.InteractionCreate, u *discordgo.User) {
	data := i.ApplicationCommandData()
	if data.Name != "race" || len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	opts := optionMap(sub.Options)
	logger.Infof("[slash] race %s by %s", sub.Name, d.SafeName(u))

	switch sub.Name {
	case "join":
		mode, err := race.ParseMode(opts["mode"])
		if err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ "+err.Error())
			return
		}
		_ = d.SendEphemeral(s, i, b.join(u.ID, d.SafeName(u), opts["track"], mode))

	case "leave":
		_ = d.SendEphemeral(s, i, b.leave(u.ID))

	case "list":
		qs := b.Service.Queues().AllQueues()
		emb := ui.RenderQueuesEmbed(qs, b.Service.Countdown, raceCards(b.Service.Races().List()))
		if b.policy.IsPrivileged(i.Member) {
			// admins get the cancel/kick selects with it
			_ = d.SendEphemeralComplex(s, i, emb, ui.ComponentsForQueues(qs, nil)[1:])
			return
		}
		_ = d.SendEphemeralEmbed(s, i, emb)

	case "shell":
		_ = d.SendEphemeral(s, i, b.fireShell(u.ID, opts["kind"]))

	case "cancel":
		if !b.policy.Require(s, i) {
			return
		}
		_ = d.SendEphemeral(s, i, b.cancelTrack(opts["track"]))

	case "kick":
		if !b.policy.Require(s, i) {
			return
		}
		_ = d.SendEphemeral(s, i, b.kick(opts["user"]))

	case "clear":
		if !b.policy.Require(s, i) {
			return
		}
		_ = d.SendEphemeral(s, i, b.clearQueues())

	case "finish":
		if !b.policy.Require(s, i) {
			return
		}
		_ = d.SendEphemeral(s, i, b.finish(strings.TrimSpace(opts["race"])))
	}
}

// ------------------- Components -------------------

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, u *discordgo.User) {
	data := i.MessageComponentData()
	logger.Infof("[component] %s by %s", data.CustomID, d.SafeName(u))

	first := ""
	if len(data.Values) > 0 {
		first = data.Values[0]
	}

	switch data.CustomID {
	case ui.LeaveButtonID:
		_ = d.SendEphemeral(s, i, b.leave(u.ID))

	case ui.JoinSelectID:
		if first == "" {
			_ = d.SendEphemeral(s, i, "⚠️ Invalid selection.")
			return
		}
		_ = d.SendEphemeral(s, i, b.join(u.ID, d.SafeName(u), first, race.Auto))

	case ui.CancelMenuID:
		if !b.policy.Require(s, i) {
			return
		}
		trackName, id, err := ui.ParseCancelValue(first)
		if err != nil {
			_ = d.SendEphemeral(s, i, "⚠️ Invalid selection.")
			return
		}
		_ = d.SendEphemeral(s, i, b.cancelQueue(trackName, id))

	case ui.KickMenuID:
		if !b.policy.Require(s, i) {
			return
		}
		uid := strings.TrimPrefix(first, "uid:")
		if uid == "" {
			_ = d.SendEphemeral(s, i, "⚠️ Invalid selection.")
			return
		}
		_ = d.SendEphemeral(s, i, b.kick(uid))

	default:
		_ = d.DeferUpdate(s, i)
	}
}

// ------------------- Prefix commands -------------------

func (b *Bot) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.ChannelID != b.Cfg.QueueChannelID {
		return
	}
	cmd, ok := d.ParseTextCommand(b.Cfg.Prefix, m.Content)
	if !ok || !b.limiter.Allow(m.Author.ID) {
		return
	}
	logger.Infof("[text] %s by %s", cmd.Name, d.SafeName(m.Author))

	reply := ""
	switch cmd.Name {
	case "join":
		reply = b.join(m.Author.ID, d.SafeName(m.Author), cmd.Track, cmd.Mode)
	case "leave":
		reply = b.leave(m.Author.ID)
	case "list":
		reply = b.summary()
	}
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		logger.Warnf("[text] reply: %v", err)
	}
}

// summary is the one-line-per-queue text form of the queue embed.
func (b *Bot) summary() string {
	qs := b.Service.Queues().AllQueues()
	if len(qs) == 0 {
		return "No queues yet."
	}
	var sb strings.Builder
	for _, q := range qs {
		fmt.Fprintf(&sb, "• %s • %s %d/%d\n", q.Track(), q.Mode().Label(), q.Len(), q.Limit())
	}
	if n := b.Service.Races().Count(); n > 0 {
		fmt.Fprintf(&sb, "🏁 %d race(s) in progress", n)
	}
	return strings.TrimRight(sb.String(), "\n")
}
