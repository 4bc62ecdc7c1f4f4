// internal/adapters/discord/policy.go
// Minimal privilege check based on configured admin roles or Administrator permission.

package discord

import (
	"github.com/bwmarrin/discordgo"
)

type Policy struct {
	adminRoles map[string]struct{}
}

func NewPolicy(adminRoleIDs []string) *Policy {
	p := &Policy{adminRoles: make(map[string]struct{}, len(adminRoleIDs))}
	for _, id := range adminRoleIDs {
		if id != "" {
			p.adminRoles[id] = struct{}{}
		}
	}
	return p
}

// IsPrivileged returns true if the member has Administrator or one of the admin roles.
func (p *Policy) IsPrivileged(m *discordgo.Member) bool {
	if m == nil {
		return false
	}
	if m.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	for _, r := range m.Roles {
		if _, ok := p.adminRoles[r]; ok {
			return true
		}
	}
	return false
}

// Require replies ephemeral and returns false if not privileged.
func (p *Policy) Require(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if p.IsPrivileged(i.Member) {
		return true
	}
	_ = SendEphemeral(s, i, "⛔ You don't have permission for this action.")
	return false
}
