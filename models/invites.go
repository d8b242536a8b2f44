package models

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	InviteBaseURL = "https://discord.gg/"

	// InviteAttributionLine is the line every attribution is rendered as
	InviteAttributionLine = "User %s used invite with url %s, created by %s to join."

	InviteUnknownInviter = "Unknown"

	Redis_Channel_Invite_Attributions = "robyul:invites:attributions"

	Keen_Collection_Invite_Attributions = "Robyul_Invite_Attribution"
)

// InviteRecord is the last known state of an invite
type InviteRecord struct {
	Code    string
	GuildID string
	Uses    int
}

// InviteAttribution names the invite a new member most likely joined with
type InviteAttribution struct {
	CreatedAt time.Time
	GuildID   string
	User      *discordgo.User
	Code      string
	URL       string
	Inviter   *discordgo.User
	Uses      int
}

func InviteURL(code string) string {
	return InviteBaseURL + code
}

func (a *InviteAttribution) InviterTag() string {
	if a.Inviter == nil {
		return InviteUnknownInviter
	}
	return a.Inviter.String()
}

func (a *InviteAttribution) String() string {
	var userTag string
	if a.User != nil {
		userTag = a.User.String()
	}
	return fmt.Sprintf(InviteAttributionLine, userTag, a.URL, a.InviterTag())
}

// Redis_InviteAttribution is the msgpack payload published for each attribution
type Redis_InviteAttribution struct {
	CreatedAt  time.Time
	GuildID    string
	UserID     string
	UserTag    string
	Code       string
	URL        string
	InviterID  string
	InviterTag string
	Uses       int
}

// Keen_InviteAttribution is the keen.io event for each attribution
type Keen_InviteAttribution struct {
	GuildID   string
	UserID    string
	Code      string
	InviterID string
	Uses      int
}
