package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"eventbot/internal/domain"
	pkgdiscord "eventbot/pkg/discord"
)

// ReactionNotification is a reaction added to or removed from a message.
type ReactionNotification struct {
	UserID    string
	MessageID string
	ChannelID string
	GuildID   string // empty outside a guild
	Emoji     string
}

// HandleReactionAdd joins the reactor to the event whose status message got
// the join reaction. Unregistered reactors get their reaction removed and a
// hint to register.
func (h *Handler) HandleReactionAdd(ctx context.Context, log *logrus.Entry, n ReactionNotification) error {
	if h.ignoreReaction(n) {
		return nil
	}
	event, err := h.events.FindByStatusMessage(ctx, n.MessageID, n.ChannelID)
	if errors.Is(err, domain.ErrEventNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	log = log.WithField("event_id", event.ID)

	registered, err := h.registration.IsRegistered(ctx, n.GuildID, n.UserID)
	if err != nil {
		return err
	}
	if !registered {
		log.Debug("reactor not registered")
		if err := h.platform.RemoveReaction(ctx, n.ChannelID, n.MessageID, n.Emoji, n.UserID); err != nil {
			return fmt.Errorf("remove reaction: %w", err)
		}
		h.reply(ctx, log, n.ChannelID, h.tr("reaction.not_registered", map[string]any{
			"Mention": pkgdiscord.Mention(n.UserID),
			"Prefix":  h.cfg.Prefix,
		}))
		return nil
	}

	joined, err := h.events.Join(ctx, event, n.UserID)
	if !joined {
		return err
	}
	log.Info("joined event")
	return errors.Join(err, h.events.RefreshStatus(ctx, event))
}

// HandleReactionRemove makes the reactor leave the event whose status message
// lost the join reaction.
func (h *Handler) HandleReactionRemove(ctx context.Context, log *logrus.Entry, n ReactionNotification) error {
	if h.ignoreReaction(n) {
		return nil
	}
	event, err := h.events.FindByStatusMessage(ctx, n.MessageID, n.ChannelID)
	if errors.Is(err, domain.ErrEventNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	left, err := h.events.Leave(ctx, event, n.UserID)
	if !left {
		return err
	}
	log.WithField("event_id", event.ID).Info("left event")
	return errors.Join(err, h.events.RefreshStatus(ctx, event))
}

func (h *Handler) ignoreReaction(n ReactionNotification) bool {
	return n.GuildID == "" || n.UserID == h.platform.BotUserID() || n.Emoji != domain.JoinEmoji
}
