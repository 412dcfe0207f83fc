package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsMessageContent

type SessionConfig struct {
	Token string
}

// NewSession creates a session requesting the intents the bot relies on.
func NewSession(cfg SessionConfig) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = intents
	return s, nil
}

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	logger  logrus.FieldLogger
}

func NewBot(session *discordgo.Session, handler *Handler, logger logrus.FieldLogger) *Bot {
	return &Bot{session: session, handler: handler, logger: logger}
}

// Run connects to the gateway and serves events until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.setupHandlers(ctx)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.WithError(err).Error("failed to properly close session")
		}
	}()

	<-ctx.Done()
	b.logger.Info("stopping")
	return nil
}

// entry returns a logger for one gateway event, tagged with a fresh request id.
func (b *Bot) entry(method string, fields logrus.Fields) *logrus.Entry {
	fields["method"] = method
	fields["request_id"] = uuid.NewString()
	return b.logger.WithFields(fields)
}

func (b *Bot) setupHandlers(ctx context.Context) {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log := b.entry("Ready", logrus.Fields{"user_id": r.User.ID, "guilds": len(r.Guilds)})
		log.Info("bot online")
	})

	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}
		log := b.entry("MessageCreate", logrus.Fields{
			"guild_id":   m.GuildID,
			"channel_id": m.ChannelID,
			"user_id":    m.Author.ID,
		})
		b.handler.HandleMessage(ctx, log, IncomingMessage{
			ID:          m.ID,
			ChannelID:   m.ChannelID,
			GuildID:     m.GuildID,
			AuthorID:    m.Author.ID,
			AuthorIsBot: m.Author.Bot,
			Content:     m.Content,
		})
	})

	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		log := b.entry("MessageReactionAdd", reactionFields(r.MessageReaction))
		if err := b.handler.HandleReactionAdd(ctx, log, toNotification(r.MessageReaction)); err != nil {
			log.WithError(err).Error("failed")
		}
	})

	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
		log := b.entry("MessageReactionRemove", reactionFields(r.MessageReaction))
		if err := b.handler.HandleReactionRemove(ctx, log, toNotification(r.MessageReaction)); err != nil {
			log.WithError(err).Error("failed")
		}
	})
}

func reactionFields(r *discordgo.MessageReaction) logrus.Fields {
	return logrus.Fields{
		"guild_id":   r.GuildID,
		"channel_id": r.ChannelID,
		"message_id": r.MessageID,
		"user_id":    r.UserID,
	}
}

func toNotification(r *discordgo.MessageReaction) ReactionNotification {
	return ReactionNotification{
		UserID:    r.UserID,
		MessageID: r.MessageID,
		ChannelID: r.ChannelID,
		GuildID:   r.GuildID,
		Emoji:     r.Emoji.Name,
	}
}
