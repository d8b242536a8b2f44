package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Seklfreak/robyul-invites/models"
	"github.com/Seklfreak/robyul-invites/modules/plugins/invites"
	"github.com/emicklei/go-restful"
)

func newTestContainer(inviteCache *invites.InviteCache) *restful.Container {
	container := restful.NewContainer()
	for _, service := range NewRestServices(inviteCache) {
		container.Add(service)
	}
	return container
}

func get(t *testing.T, container *restful.Container, path string, into interface{}) {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	request.Header.Set("Accept", restful.MIME_JSON)
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("GET %s returned %d", path, recorder.Code)
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), into); err != nil {
		t.Fatalf("GET %s returned invalid json: %s", path, err.Error())
	}
}

func TestGetGuildInvites(t *testing.T) {
	inviteCache := invites.NewInviteCache()
	inviteCache.Put("b", "1", 2)
	inviteCache.Put("a", "1", 0)
	inviteCache.Put("c", "2", 9)

	var result []models.Rest_Invite
	get(t, newTestContainer(inviteCache), "/invites/1", &result)

	if len(result) != 2 || result[0].Code != "a" || result[1].Code != "b" {
		t.Fatalf("rest.GetGuildInvites() returned %+v", result)
	}
	if result[1].Uses != 2 || result[1].URL != "https://discord.gg/b" {
		t.Fatalf("rest.GetGuildInvites() returned %+v", result[1])
	}
}

func TestGetGuildInvitesUnknownGuild(t *testing.T) {
	var result []models.Rest_Invite
	get(t, newTestContainer(invites.NewInviteCache()), "/invites/404", &result)

	if result == nil || len(result) != 0 {
		t.Fatalf("rest.GetGuildInvites() returned %+v for an unknown guild", result)
	}
}

func TestGetStats(t *testing.T) {
	inviteCache := invites.NewInviteCache()
	inviteCache.Put("a", "1", 0)
	inviteCache.Put("b", "1", 0)
	inviteCache.Put("c", "2", 0)

	var stats models.Rest_Invite_Stats
	get(t, newTestContainer(inviteCache), "/invites", &stats)

	if stats.Guilds != 2 || stats.Invites != 3 {
		t.Fatalf("rest.GetStats() returned %+v", stats)
	}
}
