package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Seklfreak/robyul-invites/cache"
	"github.com/Seklfreak/robyul-invites/helpers"
	"github.com/Seklfreak/robyul-invites/logging"
	"github.com/Seklfreak/robyul-invites/metrics"
	"github.com/Seklfreak/robyul-invites/modules/plugins/invites"
	"github.com/Seklfreak/robyul-invites/rest"
	"github.com/Seklfreak/robyul-invites/version"
	"github.com/bwmarrin/discordgo"
	"github.com/emicklei/go-restful"
	"github.com/getsentry/raven-go"
	"github.com/go-redis/redis"
	keen "github.com/inconshreveable/go-keen"
	"github.com/kz/discordrus"
	"github.com/olivere/elastic"
	"github.com/sirupsen/logrus"
)

// Entrypoint
func main() {
	log := logrus.New()
	log.Out = os.Stdout
	log.Level = logrus.InfoLevel
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: time.RFC3339}
	log.Hooks = make(logrus.LevelHooks)
	cache.SetLogger(log)

	// Read config
	err := helpers.LoadConfig("config.json")
	if err != nil {
		log.WithField("module", "launcher").Fatal(err.Error())
	}

	// Check if the bot is being debugged
	if helpers.ConfigBool("debug") {
		helpers.DEBUG_MODE = true
		log.Level = logrus.DebugLevel
	}

	if path := helpers.ConfigString("logging.jsonfile", ""); path != "" {
		fileHook, err := logging.NewLogrusFileHook(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		if err != nil {
			log.WithField("module", "launcher").Error("logrus file hook failed, err: ", err.Error())
		} else {
			log.Hooks.Add(fileHook)
			defer fileHook.Close()
		}
	}

	if webhook := helpers.ConfigString("logging.discord_webhook", ""); webhook != "" {
		log.Hooks.Add(discordrus.NewHook(
			webhook,
			logrus.ErrorLevel,
			&discordrus.Opts{
				Username:           "Logging",
				DisableTimestamp:   false,
				TimestampFormat:    "Jan 2 15:04:05.00000",
				EnableCustomColors: true,
				CustomLevelColors: &discordrus.LevelColors{
					Error: 13631488,
					Panic: 13631488,
					Fatal: 13631488,
				},
			},
		))
	}

	log.WithField("module", "launcher").Info("Booting Robyul invite tracker...")

	// Show version
	version.DumpInfo()

	// Start metric server
	metrics.Init(helpers.ConfigString("metrics.address", "localhost:1337"))

	// Call home
	if dsn := helpers.ConfigString("sentry", ""); dsn != "" {
		log.WithField("module", "launcher").Info("[SENTRY] Calling home...")
		err = raven.SetDSN(dsn)
		if err != nil {
			log.WithField("module", "launcher").Fatal(err.Error())
		}
		if version.IsRelease() {
			raven.SetRelease(version.BOT_VERSION)
		}
		log.WithField("module", "launcher").Info("[SENTRY] Someone picked up the phone \\^-^/")
	}

	// Connecting to redis
	if address := helpers.ConfigString("redis.address", ""); address != "" {
		log.WithField("module", "launcher").Info("Connecting to redis...")
		redisClient := redis.NewClient(&redis.Options{
			Addr:     address,
			Password: helpers.ConfigString("redis.password", ""),
			DB:       0,
		})
		err = redisClient.Ping().Err()
		if err != nil {
			log.WithField("module", "launcher").Error("unable to reach redis, err: ", err.Error())
		} else {
			cache.SetRedisClient(redisClient)
		}
	}

	// Connect to elastic search
	if url := helpers.ConfigString("elasticsearch.url", ""); url != "" {
		log.WithField("module", "launcher").Info("Connecting bot to elastic search...")
		client, err := elastic.NewClient(
			elastic.SetURL(url),
			elastic.SetSniff(false),
		)
		if err != nil {
			log.WithField("module", "launcher").Error("unable to reach elastic search, err: ", err.Error())
		} else {
			cache.SetElastic(client)
		}
	}

	// create keen client
	if projectID, key := helpers.ConfigString("keen.project_id", ""), helpers.ConfigString("keen.key", ""); projectID != "" && key != "" {
		log.WithField("module", "launcher").Info("Connecting bot to keen.io...")
		cache.SetKeen(&keen.Client{
			ProjectToken: projectID,
			ApiKey:       key,
		})
	}

	discordgo.Logger = discordgoLogger
	log.WithField("module", "launcher").Info("Connecting Robyul to discord...")
	discord, err := discordgo.New("Bot " + helpers.ConfigString("discord.token", ""))
	if err != nil {
		log.WithField("module", "launcher").Fatal(err.Error())
	}

	discord.Lock()
	discord.Debug = false
	discord.LogLevel = discordgo.LogInformational
	discord.StateEnabled = true
	discord.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildInvites
	discord.Unlock()

	tracker := invites.NewTracker(
		invites.NewInviteCache(),
		&invites.SessionLister{Session: discord},
		invites.WithSinks(attributionSinks(discord)...),
	)

	discord.AddHandler(BotOnReady)
	discord.AddHandler(BotOnResumed)
	discord.AddHandlerOnce(metrics.OnReady)
	invites.NewHandler(tracker).Register(discord)

	// Connect to discord
	err = discord.Open()
	if err != nil {
		raven.CaptureErrorAndWait(err, nil)
		log.WithField("module", "launcher").Fatal("unable to connect to discord, err: ", err.Error())
	}

	// Open REST API
	wsContainer := restful.NewContainer()
	for _, service := range rest.NewRestServices(tracker.Cache()) {
		wsContainer.Add(service)
	}
	wsContainer.Filter(func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		now := time.Now()
		chain.ProcessFilter(req, resp)
		log.WithField("module", "launcher").Debugf("received api request: %s %s (took %v)",
			req.Request.Method, req.Request.URL, time.Since(now))
	})

	apiAddress := helpers.ConfigString("api.address", "localhost:2021")
	go func() {
		server := &http.Server{Addr: apiAddress, Handler: wsContainer}
		err := server.ListenAndServe()
		if err != nil {
			log.WithField("module", "launcher").Error("REST API stopped, err: ", err.Error())
		}
	}()
	log.WithField("module", "launcher").Info("REST API listening on " + apiAddress)

	// Make a channel that waits for a os signal
	botRuntimeChannel := make(chan os.Signal, 1)
	signal.Notify(botRuntimeChannel, os.Interrupt, syscall.SIGTERM)

	// Wait until the os wants us to shutdown
	<-botRuntimeChannel

	log.WithField("module", "launcher").Info("Robyul is stopping")
	log.WithField("module", "launcher").Info("Disconnecting bot discord session...")
	discord.Close()
}

// attributionSinks builds the sinks for all configured backends
func attributionSinks(session *discordgo.Session) []invites.Sink {
	logger := cache.GetLogger().WithField("module", "invites")
	sinks := []invites.Sink{invites.NewLogSink(logger)}

	if channels := helpers.ConfigStringMap("invites.log_channels"); len(channels) > 0 {
		logger.Infof("posting attributions into %d log channels", len(channels))
		sinks = append(sinks, invites.NewChannelSink(session, channels))
	}
	if cache.HasRedisClient() {
		sinks = append(sinks, invites.NewRedisSink(cache.GetRedisClient()))
	}
	if cache.HasElastic() {
		sinks = append(sinks, invites.NewElasticSink(cache.GetElastic()))
	}
	if cache.HasKeen() {
		sinks = append(sinks, invites.NewKeenSink(cache.GetKeen()))
	}

	return sinks
}
