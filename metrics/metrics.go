package metrics

import (
	"expvar"
	"net/http"
	"runtime"
	"time"

	"github.com/Seklfreak/robyul-invites/cache"
	"github.com/bwmarrin/discordgo"
)

var (
	// InvitesCached is the current size of the invite cache
	InvitesCached = expvar.NewInt("invites_cached")

	// InviteListings counts all invite listings requested from discord
	InviteListings = expvar.NewInt("invite_listings")

	// InviteListingErrors counts failed invite listings
	InviteListingErrors = expvar.NewInt("invite_listing_errors")

	// InviteAttributions counts joins that got attributed to an invite
	InviteAttributions = expvar.NewInt("invite_attributions")

	// JoinsUnattributed counts reconciled joins without a matching invite
	JoinsUnattributed = expvar.NewInt("joins_unattributed")

	// GuildPurges counts guilds whose invites got dropped from the cache
	GuildPurges = expvar.NewInt("guild_purges")

	// CoroutineCount counts all running coroutines
	CoroutineCount = expvar.NewInt("coroutine_count")

	// Uptime stores the timestamp of the bot's boot
	Uptime = expvar.NewInt("uptime")
)

// Init starts a http server for /debug/vars on $address
func Init(address string) {
	cache.GetLogger().WithField("module", "metrics").Info("Listening on " + address)
	Uptime.Set(time.Now().Unix())
	go func() {
		err := http.ListenAndServe(address, nil)
		if err != nil {
			cache.GetLogger().WithField("module", "metrics").Error("metrics server stopped: ", err.Error())
		}
	}()
}

// OnReady listens for said discord event
func OnReady(session *discordgo.Session, event *discordgo.Ready) {
	go CollectRuntimeMetrics()
}

// CollectRuntimeMetrics counts all running coroutines
func CollectRuntimeMetrics() {
	for {
		time.Sleep(15 * time.Second)
		CoroutineCount.Set(int64(runtime.NumGoroutine()))
	}
}
