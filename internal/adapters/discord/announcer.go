package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jellydator/ttlcache/v3"

	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// Announcer posts race lifecycle messages to the queue channel. Repeated
// announcements for the same key inside the TTL are dropped, so a race
// published twice is only announced once.
type Announcer struct {
	s         *discordgo.Session
	channelID string

	recent *ttlcache.Cache[string, struct{}]
}

const defaultAnnounceTTL = 15 * time.Second

func NewAnnouncer(s *discordgo.Session, channelID string) *Announcer {
	return newAnnouncer(s, channelID, defaultAnnounceTTL)
}

func newAnnouncer(s *discordgo.Session, channelID string, ttl time.Duration) *Announcer {
	return &Announcer{
		s:         s,
		channelID: channelID,
		recent: ttlcache.New(
			ttlcache.WithTTL[string, struct{}](ttl),
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		),
	}
}

func (a *Announcer) allowOnce(key string) bool {
	// no janitor goroutine; stale keys go on the next announcement
	a.recent.DeleteExpired()
	_, seen := a.recent.GetOrSet(key, struct{}{})
	return !seen
}

func announceKey(kind, id string) string { return kind + ":" + id }

// Embed posts emb once per (kind, id).
func (a *Announcer) Embed(kind, id string, emb *discordgo.MessageEmbed) {
	key := announceKey(kind, id)
	if a.channelID == "" || !a.allowOnce(key) {
		return
	}
	if _, err := a.s.ChannelMessageSendEmbed(a.channelID, emb); err != nil {
		logger.Warnf("[announcer] %s: %v", key, err)
		return
	}
	logger.Debugf("[announcer] posted %s", key)
}

// Text posts a plain message once per (kind, id).
func (a *Announcer) Text(kind, id, msg string) {
	key := announceKey(kind, id)
	if a.channelID == "" || !a.allowOnce(key) {
		return
	}
	if _, err := a.s.ChannelMessageSend(a.channelID, msg); err != nil {
		logger.Warnf("[announcer] %s: %v", key, err)
	}
}
