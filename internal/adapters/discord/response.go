package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"eventbot/internal/ports/output"
)

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func (h *Handler) tr(key string, data map[string]any) string {
	return h.translator.T(h.cfg.Locale, key, data)
}

func (h *Handler) reply(ctx context.Context, log *logrus.Entry, channelID, content string) {
	if _, err := h.platform.SendText(ctx, channelID, content); err != nil {
		log.WithError(err).Error("failed to send reply")
	}
}

func (h *Handler) replyEmbed(ctx context.Context, channelID string, embed output.Embed) error {
	_, err := h.platform.SendEmbed(ctx, channelID, embed)
	return err
}
