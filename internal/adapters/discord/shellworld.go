package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/kart-queue-bot/internal/powerup"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

// ShellWorld renders fired shells as channel messages. Removing a shell
// deletes its message.
type ShellWorld struct {
	post func(text string) (string, error)
	del  func(messageID string) error
}

func NewShellWorld(s *discordgo.Session, channelID string) *ShellWorld {
	return &ShellWorld{
		post: func(text string) (string, error) {
			m, err := s.ChannelMessageSend(channelID, text)
			if err != nil {
				return "", err
			}
			return m.ID, nil
		},
		del: func(id string) error { return s.ChannelMessageDelete(channelID, id) },
	}
}

type shellMessage struct {
	id  string
	del func(string) error
}

func (m shellMessage) Remove() {
	if err := m.del(m.id); err != nil {
		logger.Warnf("[shell] delete %s: %v", m.id, err)
	}
}

func (w *ShellWorld) Drop(kind powerup.Kind, at powerup.Position) (powerup.Handle, error) {
	id, err := w.post(shellText(kind, at))
	if err != nil {
		return nil, err
	}
	return shellMessage{id: id, del: w.del}, nil
}

func shellText(kind powerup.Kind, at powerup.Position) string {
	icon := map[powerup.Kind]string{powerup.Green: "🟢", powerup.Red: "🔴", powerup.Blue: "🔵"}[kind]
	return fmt.Sprintf("%s %s shell at lap %.0f, height %.0f", icon, kind, at.X, at.Y)
}
