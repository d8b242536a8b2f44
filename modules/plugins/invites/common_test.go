package invites

import (
	"io/ioutil"
	"sync"

	"github.com/Seklfreak/robyul-invites/models"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

type fakeLister struct {
	sync.Mutex
	calls   []string
	invites map[string][]*discordgo.Invite
	err     error
}

func (l *fakeLister) GuildInvites(guildID string) ([]*discordgo.Invite, error) {
	l.Lock()
	defer l.Unlock()

	l.calls = append(l.calls, guildID)
	if l.err != nil {
		return nil, l.err
	}
	return l.invites[guildID], nil
}

func (l *fakeLister) callCount() int {
	l.Lock()
	defer l.Unlock()

	return len(l.calls)
}

type recordingSink struct {
	sync.Mutex
	attributions []*models.InviteAttribution
}

func (s *recordingSink) Emit(attribution *models.InviteAttribution) error {
	s.Lock()
	s.attributions = append(s.attributions, attribution)
	s.Unlock()
	return nil
}

func (s *recordingSink) emitted() []*models.InviteAttribution {
	s.Lock()
	defer s.Unlock()

	return append([]*models.InviteAttribution(nil), s.attributions...)
}

func syncDispatch(job func()) {
	job()
}

func discardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	return logrus.NewEntry(logger)
}

func newTestTracker(lister InviteLister, options ...Option) (*Tracker, *recordingSink) {
	sink := &recordingSink{}
	options = append([]Option{
		WithSinks(sink),
		WithDispatcher(syncDispatch),
		WithLogger(discardLogger()),
	}, options...)

	return NewTracker(NewInviteCache(), lister, options...), sink
}

func invite(code string, uses int, inviter string) *discordgo.Invite {
	i := &discordgo.Invite{Code: code, Uses: uses}
	if inviter != "" {
		i.Inviter = &discordgo.User{ID: inviter + "-id", Username: inviter, Discriminator: "1234"}
	}
	return i
}

func member(id string, bot bool) *discordgo.User {
	return &discordgo.User{ID: id, Username: id, Discriminator: "0042", Bot: bot}
}
