package invites

import (
	"time"

	"github.com/Seklfreak/robyul-invites/cache"
	"github.com/Seklfreak/robyul-invites/helpers"
	"github.com/Seklfreak/robyul-invites/metrics"
	"github.com/Seklfreak/robyul-invites/models"
	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// InviteLister lists the current invites of a guild, it may block
type InviteLister interface {
	GuildInvites(guildID string) ([]*discordgo.Invite, error)
}

// SessionLister lists invites through the discord REST API
type SessionLister struct {
	Session *discordgo.Session
}

func (l *SessionLister) GuildInvites(guildID string) ([]*discordgo.Invite, error) {
	return l.Session.GuildInvites(guildID)
}

// Dispatcher runs $job at some point in the future
type Dispatcher func(job func())

// GoDispatcher runs every job in its own goroutine
func GoDispatcher(job func()) {
	go func() {
		defer helpers.Recover()

		job()
	}()
}

// Tracker attributes member joins to the invite they most likely used
type Tracker struct {
	invites  *InviteCache
	lister   InviteLister
	sinks    []Sink
	dispatch Dispatcher
	logger   *logrus.Entry
}

type Option func(t *Tracker)

func WithSinks(sinks ...Sink) Option {
	return func(t *Tracker) {
		t.sinks = sinks
	}
}

func WithDispatcher(dispatch Dispatcher) Option {
	return func(t *Tracker) {
		t.dispatch = dispatch
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func NewTracker(invites *InviteCache, lister InviteLister, options ...Option) *Tracker {
	t := &Tracker{
		invites:  invites,
		lister:   lister,
		dispatch: GoDispatcher,
	}
	for _, option := range options {
		option(t)
	}

	if t.logger == nil {
		if cache.HasLogger() {
			t.logger = cache.GetLogger().WithField("module", "invites")
		} else {
			t.logger = logrus.StandardLogger().WithField("module", "invites")
		}
	}
	if t.sinks == nil {
		t.sinks = []Sink{NewLogSink(t.logger)}
	}

	return t
}

// Cache returns the invite cache owned by the tracker
func (t *Tracker) Cache() *InviteCache {
	return t.invites
}

func (t *Tracker) OnInviteCreated(code, guildID string, uses int) {
	t.invites.Put(code, guildID, uses)
	t.updateMetrics()
}

func (t *Tracker) OnInviteDeleted(code string) {
	if t.invites.Remove(code) {
		t.updateMetrics()
	}
}

// OnGuildAvailable seeds the cache with the current invites of $guildID.
// Codes missing from the listing are kept, invite deletions are handled by OnInviteDeleted.
func (t *Tracker) OnGuildAvailable(guildID string, canListInvites bool) {
	if !canListInvites {
		t.logger.Debugf("missing permissions to list invites on #%s, skipping caching", guildID)
		return
	}

	epoch := t.invites.Epoch(guildID)
	t.dispatch(func() {
		invites, err := t.listInvites(guildID)
		if err != nil {
			t.logger.Warn(err.Error())
			return
		}

		// the guild may have been left while listing
		if !t.invites.Seed(guildID, epoch, invites) {
			t.logger.Debugf("dropped invite listing of #%s, guild got purged while listing", guildID)
			return
		}
		t.updateMetrics()

		t.logger.Debugf("cached %d invites of #%s", len(invites), guildID)
	})
}

// OnGuildUnavailable drops every cached invite of $guildID
func (t *Tracker) OnGuildUnavailable(guildID string) int {
	purged := t.invites.PurgeGuild(guildID)
	if purged > 0 {
		metrics.GuildPurges.Add(1)
	}
	t.updateMetrics()

	t.logger.Debugf("uncached %d invites of #%s", purged, guildID)
	return purged
}

// OnMemberJoined lists the invites of $guildID and reconciles them against the cache
func (t *Tracker) OnMemberJoined(guildID string, user *discordgo.User, canListInvites bool) {
	// bot accounts never get attributed
	if user == nil || user.Bot || !canListInvites {
		return
	}

	t.dispatch(func() {
		invites, err := t.listInvites(guildID)
		if err != nil {
			t.logger.Warn(err.Error())
			return
		}

		t.Reconcile(guildID, user, invites)
	})
}

// Reconcile compares $invites, as returned by discord, against the cached invites of $guildID.
// The first invite whose uses went up gets its cached uses incremented by one and is
// attributed to $user. Invites that are not cached are skipped and stay uncached.
// The cached uses only grow by one even if discord reports a larger jump.
func (t *Tracker) Reconcile(guildID string, user *discordgo.User, invites []*discordgo.Invite) *models.InviteAttribution {
	cached := t.invites.Guild(guildID)

	for _, invite := range invites {
		if invite == nil {
			continue
		}

		record, ok := cached[invite.Code]
		if !ok || invite.Uses <= record.Uses {
			continue
		}

		// the record may have been deleted or purged while listing
		advanced, ok := t.invites.Advance(invite.Code, guildID, invite.Uses)
		if !ok {
			continue
		}

		attribution := &models.InviteAttribution{
			CreatedAt: time.Now(),
			GuildID:   guildID,
			User:      user,
			Code:      invite.Code,
			URL:       models.InviteURL(invite.Code),
			Inviter:   invite.Inviter,
			Uses:      advanced.Uses,
		}
		metrics.InviteAttributions.Add(1)
		t.emit(attribution)

		return attribution
	}

	metrics.JoinsUnattributed.Add(1)
	return nil
}

func (t *Tracker) listInvites(guildID string) ([]*discordgo.Invite, error) {
	metrics.InviteListings.Add(1)

	invites, err := t.lister.GuildInvites(guildID)
	if err != nil {
		metrics.InviteListingErrors.Add(1)
		return nil, errors.Wrapf(err, "unable to list invites of #%s", guildID)
	}

	return invites, nil
}

func (t *Tracker) emit(attribution *models.InviteAttribution) {
	for _, sink := range t.sinks {
		err := sink.Emit(attribution)
		if err != nil {
			t.logger.Warnf("%s failed to emit attribution for %s: %s",
				helpers.Typeof(sink), attribution.Code, err.Error())
		}
	}
}

func (t *Tracker) updateMetrics() {
	metrics.InvitesCached.Set(int64(t.invites.Len()))
}
