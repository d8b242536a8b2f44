package rest

import (
	"net/http"
	"sort"

	"github.com/Seklfreak/robyul-invites/models"
	"github.com/Seklfreak/robyul-invites/modules/plugins/invites"
	"github.com/emicklei/go-restful"
)

// InvitesResource exposes the invite cache read only
type InvitesResource struct {
	invites *invites.InviteCache
}

func NewRestServices(inviteCache *invites.InviteCache) []*restful.WebService {
	services := make([]*restful.WebService, 0)
	resource := &InvitesResource{invites: inviteCache}

	service := new(restful.WebService)
	service.
		Path("/invites").
		Produces(restful.MIME_JSON)
	service.Route(service.GET("").To(resource.GetStats))
	service.Route(service.GET("/{guild-id}").To(resource.GetGuildInvites))
	services = append(services, service)

	return services
}

func (r *InvitesResource) GetStats(request *restful.Request, response *restful.Response) {
	response.WriteHeaderAndEntity(http.StatusOK, models.Rest_Invite_Stats{
		Guilds:  r.invites.GuildCount(),
		Invites: r.invites.Len(),
	})
}

func (r *InvitesResource) GetGuildInvites(request *restful.Request, response *restful.Response) {
	guildID := request.PathParameter("guild-id")

	returnInvites := make([]models.Rest_Invite, 0)
	for _, record := range r.invites.Guild(guildID) {
		returnInvites = append(returnInvites, models.Rest_Invite{
			Code:    record.Code,
			GuildID: record.GuildID,
			Uses:    record.Uses,
			URL:     models.InviteURL(record.Code),
		})
	}
	sort.Slice(returnInvites, func(i, j int) bool {
		return returnInvites[i].Code < returnInvites[j].Code
	})

	response.WriteHeaderAndEntity(http.StatusOK, returnInvites)
}
