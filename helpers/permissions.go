package helpers

import (
	"github.com/bwmarrin/discordgo"
)

// GuildPermissions computes the guild wide permissions of $member.
// Channel overwrites are not considered.
func GuildPermissions(guild *discordgo.Guild, member *discordgo.Member) int64 {
	if guild == nil || member == nil || member.User == nil {
		return 0
	}

	if guild.OwnerID == member.User.ID {
		return discordgo.PermissionAll
	}

	var permissions int64
	for _, role := range guild.Roles {
		// the @everyone role shares the guild id
		if role.ID == guild.ID {
			permissions |= role.Permissions
			continue
		}
		for _, roleID := range member.Roles {
			if role.ID == roleID {
				permissions |= role.Permissions
				break
			}
		}
	}

	if permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll
	}

	return permissions
}

// HasGuildPermission checks the cached state for $permission of $userID on $guildID
// A guild or member missing from the state counts as not permitted.
func HasGuildPermission(state *discordgo.State, guildID, userID string, permission int64) bool {
	if state == nil {
		return false
	}

	guild, err := state.Guild(guildID)
	if err != nil {
		return false
	}
	member, err := state.Member(guildID, userID)
	if err != nil {
		return false
	}

	return GuildPermissions(guild, member)&permission == permission
}
