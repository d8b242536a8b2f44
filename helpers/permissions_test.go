package helpers

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestGuildPermissions(t *testing.T) {
	guild := &discordgo.Guild{
		ID:      "1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "1", Permissions: discordgo.PermissionSendMessages},
			{ID: "mods", Permissions: discordgo.PermissionManageServer},
			{ID: "admins", Permissions: discordgo.PermissionAdministrator},
		},
	}

	tests := []struct {
		name   string
		member *discordgo.Member
		want   int64
	}{
		{"everyone", &discordgo.Member{User: &discordgo.User{ID: "u"}}, discordgo.PermissionSendMessages},
		{"role", &discordgo.Member{User: &discordgo.User{ID: "u"}, Roles: []string{"mods"}},
			discordgo.PermissionSendMessages | discordgo.PermissionManageServer},
		{"administrator", &discordgo.Member{User: &discordgo.User{ID: "u"}, Roles: []string{"admins"}}, discordgo.PermissionAll},
		{"owner", &discordgo.Member{User: &discordgo.User{ID: "owner"}}, discordgo.PermissionAll},
		{"unknown role", &discordgo.Member{User: &discordgo.User{ID: "u"}, Roles: []string{"gone"}}, discordgo.PermissionSendMessages},
		{"no user", &discordgo.Member{}, 0},
	}

	for _, test := range tests {
		if got := GuildPermissions(guild, test.member); got != test.want {
			t.Errorf("%s: helpers.GuildPermissions() = %d, want %d", test.name, got, test.want)
		}
	}

	if GuildPermissions(nil, tests[0].member) != 0 {
		t.Errorf("helpers.GuildPermissions() returned permissions without guild")
	}
}

func TestHasGuildPermission(t *testing.T) {
	state := discordgo.NewState()
	err := state.GuildAdd(&discordgo.Guild{
		ID:    "1",
		Roles: []*discordgo.Role{{ID: "1", Permissions: discordgo.PermissionManageServer}},
	})
	if err != nil {
		t.Fatalf("unable to add guild to state: %s", err.Error())
	}
	err = state.MemberAdd(&discordgo.Member{GuildID: "1", User: &discordgo.User{ID: "bot"}})
	if err != nil {
		t.Fatalf("unable to add member to state: %s", err.Error())
	}

	if !HasGuildPermission(state, "1", "bot", discordgo.PermissionManageServer) {
		t.Errorf("helpers.HasGuildPermission() denied Manage Server granted by @everyone")
	}
	if HasGuildPermission(state, "1", "bot", discordgo.PermissionBanMembers) {
		t.Errorf("helpers.HasGuildPermission() allowed a missing permission")
	}
	if HasGuildPermission(state, "1", "stranger", discordgo.PermissionManageServer) {
		t.Errorf("helpers.HasGuildPermission() allowed a member missing from the state")
	}
	if HasGuildPermission(nil, "1", "bot", discordgo.PermissionManageServer) {
		t.Errorf("helpers.HasGuildPermission() allowed without state")
	}
}
