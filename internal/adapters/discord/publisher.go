package discord

import (
	"errors"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// QueueUITitle prefixes the title of the queue embed; it is how an existing
// queue message is found again after a restart.
const QueueUITitle = "Kart Queues"

const errUnknownMessage = 10008

var (
	queueMsgIDs sync.Map // channelID -> messageID
	chLocks     sync.Map // channelID -> *sync.Mutex
)

func SetQueueMessageID(channelID, messageID string) {
	if channelID != "" && messageID != "" {
		queueMsgIDs.Store(channelID, messageID)
	}
}

func getQueueMessageID(channelID string) (string, bool) {
	v, ok := queueMsgIDs.Load(channelID)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func chanLock(channelID string) *sync.Mutex {
	v, _ := chLocks.LoadOrStore(channelID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func looksLikeQueueUI(m *discordgo.Message) bool {
	if m == nil || len(m.Embeds) == 0 {
		return false
	}
	return strings.HasPrefix(m.Embeds[0].Title, QueueUITitle)
}

// findExistingQueueMessage scans recent channel history for our queue UI.
func findExistingQueueMessage(s *discordgo.Session, channelID string) (string, bool) {
	msgs, err := s.ChannelMessages(channelID, 50, "", "", "")
	if err != nil {
		return "", false
	}

	botID := ""
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}
	for _, m := range msgs {
		if !looksLikeQueueUI(m) {
			continue
		}
		if botID != "" && (m.Author == nil || m.Author.ID != botID) {
			continue
		}
		return m.ID, true
	}
	return "", false
}

// PublishOrEditQueueMessage keeps one queue message per channel, guarded by
// a per-channel lock:
//   - remembered ID: edit it
//   - otherwise recover it from history and edit
//   - otherwise create a new one and remember its ID
func PublishOrEditQueueMessage(s *discordgo.Session, channelID string, emb *discordgo.MessageEmbed, comps []discordgo.MessageComponent) error {
	mu := chanLock(channelID)
	mu.Lock()
	defer mu.Unlock()
	return publishOrEditLocked(s, channelID, emb, comps)
}

func publishOrEditLocked(s *discordgo.Session, channelID string, emb *discordgo.MessageEmbed, comps []discordgo.MessageComponent) error {
	if _, ok := getQueueMessageID(channelID); ok {
		logger.Debugf("[publisher] edit (remembered) ch=%s", channelID)
		return editLocked(s, channelID, emb, comps)
	}
	if id, ok := findExistingQueueMessage(s, channelID); ok {
		logger.Infof("[publisher] edit (rehydrated id=%s) ch=%s", id, channelID)
		SetQueueMessageID(channelID, id)
		return editLocked(s, channelID, emb, comps)
	}
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{emb}, Components: comps})
	if err != nil {
		return err
	}
	if msg != nil {
		logger.Infof("[publisher] create id=%s ch=%s", msg.ID, channelID)
		SetQueueMessageID(channelID, msg.ID)
	}
	return nil
}

// caller holds the channel lock
func editLocked(s *discordgo.Session, channelID string, emb *discordgo.MessageEmbed, comps []discordgo.MessageComponent) error {
	msgID, ok := getQueueMessageID(channelID)
	if !ok {
		return nil
	}
	embeds := []*discordgo.MessageEmbed{emb}
	compsCopy := comps
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         msgID,
		Embeds:     &embeds,
		Components: &compsCopy,
	})
	if isUnknownMessage(err) {
		// deleted by hand: forget it and post a fresh one
		queueMsgIDs.Delete(channelID)
		return publishOrEditLocked(s, channelID, emb, comps)
	}
	return err
}

func isUnknownMessage(err error) bool {
	var re *discordgo.RESTError
	return errors.As(err, &re) && re.Message != nil && re.Message.Code == errUnknownMessage
}
