package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

const ephemeralFlag = 1 << 6

// SendEphemeral posts an ephemeral message only visible to the user who interacted.
func SendEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   ephemeralFlag,
		},
	})
	if err != nil {
		logger.Warnf("[discord] SendEphemeral: %v", err)
	}
	return err
}

// SendEphemeralEmbed responds with an ephemeral embed.
func SendEphemeralEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, emb *discordgo.MessageEmbed) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{emb},
			Flags:  ephemeralFlag,
		},
	})
	if err != nil {
		logger.Warnf("[discord] SendEphemeralEmbed: %v", err)
	}
	return err
}

// DeferUpdate acknowledges a component interaction without changing its
// message; the queue message is refreshed by the publisher instead.
func DeferUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		logger.Warnf("[discord] DeferUpdate: %v", err)
	}
	return err
}

func SendEphemeralComplex(s *discordgo.Session, i *discordgo.InteractionCreate, emb *discordgo.MessageEmbed, comps []discordgo.MessageComponent) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{emb},
			Components: comps,
			Flags:      ephemeralFlag,
		},
	})
	if err != nil {
		logger.Warnf("[discord] SendEphemeralComplex: %v", err)
	}
	return err
}

// UserOf extracts the effective user from an interaction (guild or DM).
func UserOf(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// SafeName prefers the global display name over the username.
func SafeName(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
