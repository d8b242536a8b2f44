package models

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestInviteAttributionString(t *testing.T) {
	attribution := &InviteAttribution{
		User:    &discordgo.User{Username: "joiner", Discriminator: "0042"},
		URL:     InviteURL("abc"),
		Inviter: &discordgo.User{Username: "alice", Discriminator: "1234"},
	}

	want := "User joiner#0042 used invite with url https://discord.gg/abc, created by alice#1234 to join."
	if got := attribution.String(); got != want {
		t.Fatalf("models.InviteAttribution.String() = %q, want %q", got, want)
	}

	attribution.Inviter = nil
	want = "User joiner#0042 used invite with url https://discord.gg/abc, created by Unknown to join."
	if got := attribution.String(); got != want {
		t.Fatalf("models.InviteAttribution.String() = %q, want %q", got, want)
	}
}
