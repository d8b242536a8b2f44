package invites

import (
	"github.com/Seklfreak/robyul-invites/helpers"
	"github.com/bwmarrin/discordgo"
)

// PermissionFunc reports whether the bot may list the invites of $guildID
type PermissionFunc func(session *discordgo.Session, guildID string) bool

// CanManageServer checks the session state for the Manage Server permission of the bot
func CanManageServer(session *discordgo.Session, guildID string) bool {
	if session == nil || session.State == nil || session.State.User == nil {
		return false
	}

	return helpers.HasGuildPermission(
		session.State, guildID, session.State.User.ID, discordgo.PermissionManageServer)
}

// Handler forwards discord events to a Tracker
type Handler struct {
	tracker        *Tracker
	canListInvites PermissionFunc
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{
		tracker:        tracker,
		canListInvites: CanManageServer,
	}
}

// Register adds all event handlers to $session
func (h *Handler) Register(session *discordgo.Session) {
	session.AddHandler(h.OnGuildCreate)
	session.AddHandler(h.OnGuildDelete)
	session.AddHandler(h.OnInviteCreate)
	session.AddHandler(h.OnInviteDelete)
	session.AddHandler(h.OnGuildMemberAdd)
}

// OnGuildCreate fires when a guild becomes available and when the bot joins a guild
func (h *Handler) OnGuildCreate(session *discordgo.Session, event *discordgo.GuildCreate) {
	if event.Guild == nil || event.Guild.Unavailable {
		return
	}

	h.tracker.OnGuildAvailable(event.ID, h.canListInvites(session, event.ID))
}

func (h *Handler) OnGuildDelete(session *discordgo.Session, event *discordgo.GuildDelete) {
	// unavailable means an outage, the bot is still a member
	if event.Guild == nil || event.Guild.Unavailable {
		return
	}

	h.tracker.OnGuildUnavailable(event.ID)
}

func (h *Handler) OnInviteCreate(session *discordgo.Session, event *discordgo.InviteCreate) {
	if event.Invite == nil {
		return
	}

	guildID := event.GuildID
	if guildID == "" && event.Invite.Guild != nil {
		guildID = event.Invite.Guild.ID
	}
	if guildID == "" {
		return
	}

	h.tracker.OnInviteCreated(event.Code, guildID, event.Uses)
}

func (h *Handler) OnInviteDelete(session *discordgo.Session, event *discordgo.InviteDelete) {
	h.tracker.OnInviteDeleted(event.Code)
}

func (h *Handler) OnGuildMemberAdd(session *discordgo.Session, event *discordgo.GuildMemberAdd) {
	if event.Member == nil || event.Member.User == nil {
		return
	}
	h.tracker.OnMemberJoined(
		event.Member.GuildID,
		event.Member.User,
		h.canListInvites(session, event.Member.GuildID),
	)
}
