package invites

import (
	"context"

	"github.com/Seklfreak/robyul-invites/models"
	"github.com/bwmarrin/discordgo"
	"github.com/go-redis/redis"
	"github.com/olivere/elastic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack"
)

// Sink receives every attribution the tracker makes
type Sink interface {
	Emit(attribution *models.InviteAttribution) error
}

// LogSink writes the attribution line to the log
type LogSink struct {
	logger *logrus.Entry
}

func NewLogSink(logger *logrus.Entry) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(attribution *models.InviteAttribution) error {
	fields := logrus.Fields{
		"guild": attribution.GuildID,
		"code":  attribution.Code,
		"uses":  attribution.Uses,
	}
	if attribution.User != nil {
		fields["user"] = attribution.User.ID
	}
	if attribution.Inviter != nil {
		fields["inviter"] = attribution.Inviter.ID
	}

	s.logger.WithFields(fields).Info(attribution.String())
	return nil
}

// MessageSendFunc posts $content into $channelID
type MessageSendFunc func(channelID, content string) error

// ChannelSink posts the attribution line into a per guild log channel
type ChannelSink struct {
	send     MessageSendFunc
	channels map[string]string
}

// NewChannelSink posts through $session into $channels, a map of guild id to channel id
func NewChannelSink(session *discordgo.Session, channels map[string]string) *ChannelSink {
	return NewChannelSinkWithSender(func(channelID, content string) error {
		_, err := session.ChannelMessageSend(channelID, content)
		return err
	}, channels)
}

func NewChannelSinkWithSender(send MessageSendFunc, channels map[string]string) *ChannelSink {
	return &ChannelSink{send: send, channels: channels}
}

func (s *ChannelSink) Emit(attribution *models.InviteAttribution) error {
	channelID, ok := s.channels[attribution.GuildID]
	if !ok {
		return nil
	}

	err := s.send(channelID, attribution.String())
	if err != nil {
		if errD, ok := err.(*discordgo.RESTError); ok && errD.Message != nil &&
			errD.Message.Code == discordgo.ErrCodeMissingPermissions {
			return nil
		}
		return errors.Wrapf(err, "unable to post attribution into #%s", channelID)
	}
	return nil
}

type publisher interface {
	Publish(channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes msgpack encoded attributions on a redis channel
type RedisSink struct {
	client  publisher
	channel string
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client, channel: models.Redis_Channel_Invite_Attributions}
}

func (s *RedisSink) Emit(attribution *models.InviteAttribution) error {
	payload := models.Redis_InviteAttribution{
		CreatedAt:  attribution.CreatedAt,
		GuildID:    attribution.GuildID,
		Code:       attribution.Code,
		URL:        attribution.URL,
		InviterTag: attribution.InviterTag(),
		Uses:       attribution.Uses,
	}
	if attribution.User != nil {
		payload.UserID = attribution.User.ID
		payload.UserTag = attribution.User.String()
	}
	if attribution.Inviter != nil {
		payload.InviterID = attribution.Inviter.ID
	}

	data, err := msgpack.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "unable to encode attribution")
	}

	return s.client.Publish(s.channel, data).Err()
}

// ElasticSink stores attributed joins in the joins index
type ElasticSink struct {
	client *elastic.Client
}

func NewElasticSink(client *elastic.Client) *ElasticSink {
	return &ElasticSink{client: client}
}

func (s *ElasticSink) Emit(attribution *models.InviteAttribution) error {
	elasticJoinData := models.ElasticJoin{
		CreatedAt:      attribution.CreatedAt,
		GuildID:        attribution.GuildID,
		UsedInviteCode: attribution.Code,
		InviteUses:     attribution.Uses,
	}
	if attribution.User != nil {
		elasticJoinData.UserID = attribution.User.ID
	}
	if attribution.Inviter != nil {
		elasticJoinData.InviterID = attribution.Inviter.ID
	}

	_, err := s.client.Index().
		Index(models.ElasticIndexJoins).
		Type(models.ElasticTypeDoc).
		BodyJson(elasticJoinData).
		Do(context.Background())
	return err
}

type eventAdder interface {
	AddEvent(collection string, event interface{}) error
}

// KeenSink sends attributions to keen.io
type KeenSink struct {
	client eventAdder
}

func NewKeenSink(client eventAdder) *KeenSink {
	return &KeenSink{client: client}
}

func (s *KeenSink) Emit(attribution *models.InviteAttribution) error {
	event := &models.Keen_InviteAttribution{
		GuildID: attribution.GuildID,
		Code:    attribution.Code,
		Uses:    attribution.Uses,
	}
	if attribution.User != nil {
		event.UserID = attribution.User.ID
	}
	if attribution.Inviter != nil {
		event.InviterID = attribution.Inviter.ID
	}

	return s.client.AddEvent(models.Keen_Collection_Invite_Attributions, event)
}
