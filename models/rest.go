package models

type Rest_Invite struct {
	Code    string
	GuildID string
	Uses    int
	URL     string
}

type Rest_Invite_Stats struct {
	Guilds  int
	Invites int
}
