package discord

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

var channelMention = regexp.MustCompile(`^(?:<#(\d+)>|(\d+))$`)

func (h *Handler) routes() []Route {
	return []Route{
		{
			Path:    "register",
			Usage:   "register",
			Help:    "Register yourself on this server.",
			Handler: h.register,
		},
		{
			Path:    "check_registered",
			Usage:   "check_registered",
			Help:    "Check whether you are registered.",
			Handler: h.checkRegistered,
		},
		{
			Path:    "help",
			Usage:   "help",
			Help:    "Show this message.",
			Handler: h.help,
		},
		{
			Path:      "event create",
			Usage:     `event create <name> [description...]`,
			Help:      "Create a new event. The description can be multiple lines.",
			AdminOnly: true,
			Handler:   h.createEvent,
		},
		{
			Path:      "event delete",
			Usage:     "event delete <name> [delete_channel=true]",
			Help:      "Delete an event, and its channel unless delete_channel is false.",
			AdminOnly: true,
			Handler:   h.deleteEvent,
		},
		{
			Path:      "event message",
			Usage:     "event message <name> [#channel]",
			Help:      "Post the event status message here or in the given channel.",
			AdminOnly: true,
			Handler:   h.eventMessage,
		},
		{
			Path:                 "event leave",
			Usage:                "event leave",
			Help:                 "Leave the event of the current event channel.",
			RequiresRegistration: true,
			Handler:              h.leaveEvent,
		},
		{
			Path:    "event list",
			Usage:   "event list",
			Help:    "List all events.",
			Handler: h.listEvents,
		},
		{
			Path:    "event participators",
			Aliases: []string{"event users"},
			Usage:   "event participators <name>",
			Help:    "List the users participating in an event.",
			Handler: h.participators,
		},
	}
}

func (h *Handler) register(ctx context.Context, inv *Invocation) error {
	msg := inv.Message
	created, err := h.registration.Register(ctx, msg.GuildID, msg.AuthorID)
	if err != nil {
		return err
	}
	key := "register.done"
	if !created {
		key = "register.already"
	}
	h.reply(ctx, inv.Log, msg.ChannelID, h.tr(key, nil))
	return nil
}

func (h *Handler) checkRegistered(ctx context.Context, inv *Invocation) error {
	msg := inv.Message
	ok, err := h.registration.IsRegistered(ctx, msg.GuildID, msg.AuthorID)
	if err != nil {
		return err
	}
	if ok {
		h.reply(ctx, inv.Log, msg.ChannelID, h.tr("register.check_yes", nil))
	} else {
		h.reply(ctx, inv.Log, msg.ChannelID, h.tr("register.check_no", map[string]any{"Prefix": h.cfg.Prefix}))
	}
	return nil
}

func (h *Handler) help(ctx context.Context, inv *Invocation) error {
	routes := h.router.Routes()
	lines := make([]string, 0, len(routes))
	for _, r := range routes {
		line := "`" + h.cfg.Prefix + r.Usage + "` " + r.Help
		if r.AdminOnly {
			line += " " + h.tr("help.admin", nil)
		}
		lines = append(lines, line)
	}
	return h.replyEmbed(ctx, inv.Message.ChannelID, pkgdiscord.ListEmbed(h.tr("help.title", nil), lines))
}

func (h *Handler) createEvent(ctx context.Context, inv *Invocation) error {
	name := strings.TrimSpace(inv.NextArg())
	if name == "" {
		return errUsage
	}
	description := inv.Rest()

	event, err := h.events.CreateEvent(ctx, inv.Message.GuildID, name, description, inv.Message.ChannelID)
	if err != nil {
		return err
	}
	inv.Log.WithField("event_id", event.ID).Info("event created")
	return nil
}

func (h *Handler) deleteEvent(ctx context.Context, inv *Invocation) error {
	name := strings.TrimSpace(inv.NextArg())
	if name == "" {
		return errUsage
	}
	deleteChannel := true
	if arg := inv.NextArg(); arg != "" {
		v, ok := parseBoolArg(arg)
		if !ok {
			return errUsage
		}
		deleteChannel = v
	}

	event, err := h.events.FindByName(ctx, inv.Message.GuildID, name)
	if err != nil {
		return err
	}
	if err := h.events.DeleteEvent(ctx, event, deleteChannel); err != nil {
		return err
	}
	inv.Log.WithField("event_id", event.ID).Info("event deleted")
	h.reply(ctx, inv.Log, inv.Message.ChannelID, h.tr("event.deleted", nil))
	return nil
}

func (h *Handler) eventMessage(ctx context.Context, inv *Invocation) error {
	name := strings.TrimSpace(inv.NextArg())
	if name == "" {
		return errUsage
	}
	channelID := inv.Message.ChannelID
	if arg := inv.NextArg(); arg != "" {
		id, ok := parseChannelArg(arg)
		if !ok {
			return errUsage
		}
		channelID = id
	}

	event, err := h.events.FindByName(ctx, inv.Message.GuildID, name)
	if err != nil {
		return err
	}
	return h.events.PublishStatus(ctx, event, channelID)
}

func (h *Handler) leaveEvent(ctx context.Context, inv *Invocation) error {
	msg := inv.Message
	event, err := h.events.FindByEventChannel(ctx, msg.ChannelID)
	if errors.Is(err, domain.ErrEventNotFound) {
		return domain.ErrNotEventChannel
	}
	if err != nil {
		return err
	}

	if event.HasStatusMessage() {
		err := h.platform.RemoveReaction(ctx, event.MessageChannelID, event.MessageID, domain.JoinEmoji, msg.AuthorID)
		if err != nil && !errors.Is(err, output.ErrResourceNotFound) {
			return err
		}
	}
	if err := h.platform.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil && !errors.Is(err, output.ErrResourceNotFound) {
		return err
	}

	left, err := h.events.Leave(ctx, event, msg.AuthorID)
	if err != nil {
		return err
	}
	if left {
		return h.events.RefreshStatus(ctx, event)
	}
	return nil
}

func (h *Handler) listEvents(ctx context.Context, inv *Invocation) error {
	events, err := h.events.ListEvents(ctx, inv.Message.GuildID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		h.reply(ctx, inv.Log, inv.Message.ChannelID, h.tr("event.none", nil))
		return nil
	}
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	return h.replyEmbed(ctx, inv.Message.ChannelID, pkgdiscord.ListEmbed(h.tr("event.list_title", nil), names))
}

func (h *Handler) participators(ctx context.Context, inv *Invocation) error {
	name := strings.TrimSpace(inv.NextArg())
	if name == "" {
		return errUsage
	}
	event, err := h.events.FindByName(ctx, inv.Message.GuildID, name)
	if err != nil {
		return err
	}
	view, err := h.events.StatusView(ctx, event, false)
	if err != nil {
		return err
	}
	return h.replyEmbed(ctx, inv.Message.ChannelID, view)
}

// parseBoolArg accepts strconv.ParseBool's forms plus yes/no, on/off and
// enable/disable.
func parseBoolArg(s string) (bool, bool) {
	if v, err := strconv.ParseBool(s); err == nil {
		return v, true
	}
	switch strings.ToLower(s) {
	case "yes", "y", "on", "enable":
		return true, true
	case "no", "n", "off", "disable":
		return false, true
	}
	return false, false
}

// parseChannelArg accepts a channel mention (<#123>) or a bare channel id.
func parseChannelArg(s string) (string, bool) {
	m := channelMention.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}
