package models

import "time"

const (
	ElasticTypeDoc    = "doc"
	ElasticIndexJoins = "joins"
)

type ElasticJoin struct {
	CreatedAt      time.Time
	GuildID        string
	UserID         string
	UsedInviteCode string
	InviterID      string
	InviteUses     int
}
