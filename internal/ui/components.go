// internal/ui/components.go
// Build Discord components (buttons/select-menus) for the race queues UI.

package ui

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/jose-valero/kart-queue-bot/internal/queue"
)

const (
	LeaveButtonID = "race_leave"
	JoinSelectID  = "race_join"
	CancelMenuID  = "race_cancel"
	KickMenuID    = "race_kick"

	maxOptions = 25 // discord select menu limit
)

// ComponentsForQueues returns rows for:
//   - Row 1: Leave
//   - Row 2: quick join per track (any mode)
//   - Row 3: cancel a queue (admins only at runtime)
//   - Row 4: kick select, only when somebody is queued
func ComponentsForQueues(qs []*queue.RaceQueue, tracks []string) []discordgo.MessageComponent {
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Leave",
					Style:    discordgo.SecondaryButton,
					CustomID: LeaveButtonID,
					Emoji:    &discordgo.ComponentEmoji{Name: "👋"},
				},
			},
		},
	}

	if len(tracks) > 0 {
		opts := make([]discordgo.SelectMenuOption, 0, len(tracks))
		for _, name := range tracks {
			if len(opts) == maxOptions {
				break
			}
			opts = append(opts, discordgo.SelectMenuOption{
				Label: "🏁 " + name,
				Value: name,
			})
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    JoinSelectID,
					Placeholder: "Join a track…",
					Options:     opts,
				},
			},
		})
	}

	if len(qs) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    CancelMenuID,
					Placeholder: "Cancel a queue…",
					Options:     cancelOptions(qs),
				},
			},
		})
	}

	if kopts := kickOptions(qs); len(kopts) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    KickMenuID,
					Placeholder: "Kick a player…",
					Options:     kopts,
				},
			},
		})
	}

	return components
}

func cancelOptions(qs []*queue.RaceQueue) []discordgo.SelectMenuOption {
	opts := make([]discordgo.SelectMenuOption, 0, min(len(qs), maxOptions))
	for i, q := range qs {
		if len(opts) == maxOptions {
			break
		}
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("Cancel %s #%d", q.Track(), i+1),
			Value:       CancelValue(q.Track(), q.ID()),
			Description: fmt.Sprintf("%s • %d/%d", q.Mode().Label(), q.Len(), q.Limit()),
		})
	}
	return opts
}

func kickOptions(qs []*queue.RaceQueue) []discordgo.SelectMenuOption {
	opts := make([]discordgo.SelectMenuOption, 0, maxOptions)
	for _, q := range qs {
		for _, p := range q.Players() {
			opts = append(opts, discordgo.SelectMenuOption{
				Label: fmt.Sprintf("Kick %s (%s)", p.Username, q.Track()),
				Value: "uid:" + p.ID,
			})
			if len(opts) == maxOptions {
				return opts
			}
		}
	}
	return opts
}

// CancelValue encodes a queue reference for the cancel menu.
func CancelValue(track string, id uuid.UUID) string {
	return track + "|" + id.String()
}

// ParseCancelValue is the inverse of CancelValue.
func ParseCancelValue(v string) (string, uuid.UUID, error) {
	i := strings.LastIndex(v, "|")
	if i <= 0 {
		return "", uuid.Nil, fmt.Errorf("bad queue reference %q", v)
	}
	id, err := uuid.Parse(v[i+1:])
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("bad queue reference %q: %w", v, err)
	}
	return v[:i], id, nil
}
