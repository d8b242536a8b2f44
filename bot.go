package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Seklfreak/robyul-invites/cache"
	"github.com/bwmarrin/discordgo"
)

// BotOnReady gets called after the gateway connected
func BotOnReady(session *discordgo.Session, event *discordgo.Ready) {
	log := cache.GetLogger()

	log.WithField("module", "bot").Infof("Connected to discord as %s, %d guilds", event.User.String(), len(event.Guilds))
	log.WithField("module", "bot").Info("Invite link: " + fmt.Sprintf(
		"https://discord.com/oauth2/authorize?client_id=%s&scope=bot&permissions=%d",
		event.User.ID,
		discordgo.PermissionManageServer|discordgo.PermissionManageChannels|discordgo.PermissionSendMessages,
	))
}

// BotOnResumed gets called after the gateway resumed a session
func BotOnResumed(session *discordgo.Session, event *discordgo.Resumed) {
	cache.GetLogger().WithField("module", "bot").Info("Resumed discord session")
}

// discordgoLogger writes discordgo's own log messages to logrus
func discordgoLogger(msgL, caller int, format string, a ...interface{}) {
	log := cache.GetLogger().WithField("module", "discordgo")

	pc, file, line, _ := runtime.Caller(caller)

	files := strings.Split(file, "/")
	file = files[len(files)-1]

	name := runtime.FuncForPC(pc).Name()
	fns := strings.Split(name, ".")
	name = fns[len(fns)-1]

	msg := format
	if strings.Contains(msg, "%") {
		msg = fmt.Sprintf(format, a...)
	}

	switch msgL {
	case discordgo.LogError:
		log.Errorf("%s:%d:%s() %s", file, line, name, msg)
	case discordgo.LogWarning:
		log.Warnf("%s:%d:%s() %s", file, line, name, msg)
	case discordgo.LogInformational:
		log.Infof("%s:%d:%s() %s", file, line, name, msg)
	case discordgo.LogDebug:
		log.Debugf("%s:%d:%s() %s", file, line, name, msg)
	}
}
