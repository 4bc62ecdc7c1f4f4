// internal/app/commands.go
package app

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/kart-queue-bot/internal/powerup"
	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/internal/track"
)

const maxChoices = 25 // discord limit per option

func trackOption(required bool, cat *track.Catalog) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "track",
		Description: "Track to race on",
		Required:    required,
	}
	for _, name := range cat.Names() {
		if len(opt.Choices) == maxChoices {
			break
		}
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return opt
}

func modeOption() *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "mode",
		Description: "Race mode (any by default)",
	}
	for _, m := range append([]race.Mode{race.Auto}, race.Modes...) {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: m.Label(), Value: string(m)})
	}
	return opt
}

func shellOption() *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "kind",
		Description: "Shell to fire",
		Required:    true,
	}
	for _, k := range []powerup.Kind{powerup.Green, powerup.Red, powerup.Blue} {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: k.String(), Value: k.String()})
	}
	return opt
}

func subcommand(name, desc string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: desc,
		Options:     opts,
	}
}

// buildCommands returns the /race command tree. Track choices come from the
// catalog.
func buildCommands(cat *track.Catalog) []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "race",
			Description: "Kart race queues",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("join", "Join the first queue with space on a track", trackOption(true, cat), modeOption()),
				subcommand("leave", "Leave whatever queue you're in"),
				subcommand("list", "Show queues and races in progress"),
				subcommand("shell", "Fire a shell in your current race", shellOption()),
				subcommand("cancel", "Cancel every queue on a track (admin)", trackOption(true, cat)),
				subcommand("kick", "Remove a player from their queue (admin)", &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to kick",
					Required:    true,
				}),
				subcommand("clear", "Drop every queue (admin)"),
				subcommand("finish", "Close a race in progress (admin)", &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "race",
					Description: "Race id",
					Required:    true,
				}),
			},
		},
	}
}

// RegisterCommands creates (or updates) guild-level commands.
func RegisterCommands(s *discordgo.Session, appID, guildID string, cat *track.Catalog) error {
	for _, c := range buildCommands(cat) {
		if _, err := s.ApplicationCommandCreate(appID, guildID, c); err != nil {
			return err
		}
	}
	return nil
}
