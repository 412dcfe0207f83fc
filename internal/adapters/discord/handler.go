package discord

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"eventbot/internal/domain"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

type HandlerConfig struct {
	Prefix    string
	AdminRole string
	Locale    string
}

// IncomingMessage is the part of a created message the handler needs.
type IncomingMessage struct {
	ID          string
	ChannelID   string
	GuildID     string // empty outside a guild
	AuthorID    string
	AuthorIsBot bool
	Content     string
}

// Handler turns chat messages and reactions into use case calls.
type Handler struct {
	cfg          HandlerConfig
	events       input.EventUseCase
	registration input.RegistrationUseCase
	platform     output.Platform
	translator   output.T
	router       *Router
}

func NewHandler(
	cfg HandlerConfig,
	events input.EventUseCase,
	registration input.RegistrationUseCase,
	platform output.Platform,
	translator output.T,
) *Handler {
	h := &Handler{
		cfg:          cfg,
		events:       events,
		registration: registration,
		platform:     platform,
		translator:   translator,
	}
	h.router = NewRouter(h.routes()...)
	return h
}

// HandleMessage dispatches a prefixed command. Every failure is answered in
// the message's channel; nothing is returned to the caller.
func (h *Handler) HandleMessage(ctx context.Context, log *logrus.Entry, msg IncomingMessage) {
	if msg.AuthorIsBot || msg.AuthorID == h.platform.BotUserID() {
		return
	}
	line, ok := strings.CutPrefix(msg.Content, h.cfg.Prefix)
	if !ok {
		return
	}

	route, args, result := h.router.Resolve(line)
	switch result {
	case routeNone:
		return
	case routeInvalidGroup:
		if msg.GuildID == "" {
			h.replyError(ctx, log, msg.ChannelID, domain.ErrGuildOnly)
			return
		}
		h.reply(ctx, log, msg.ChannelID, h.tr("command.invalid_event", nil))
		return
	}

	log = log.WithField("command", route.Path)
	inv := &Invocation{Message: msg, Route: route, Log: log, rest: args}
	log.Debug("dispatching")

	if err := h.dispatch(ctx, inv); err != nil {
		if errors.Is(err, errUsage) {
			h.reply(ctx, log, msg.ChannelID, h.tr("command.usage", map[string]any{"Usage": h.cfg.Prefix + route.Usage}))
			return
		}
		h.replyError(ctx, log, msg.ChannelID, err)
	}
}

func (h *Handler) dispatch(ctx context.Context, inv *Invocation) error {
	msg := inv.Message
	if msg.GuildID == "" {
		return domain.ErrGuildOnly
	}
	if inv.Route.AdminOnly {
		names, err := h.platform.MemberRoleNames(ctx, msg.GuildID, msg.AuthorID)
		if err != nil {
			return err
		}
		if !slices.Contains(names, h.cfg.AdminRole) {
			return domain.ErrMissingRole
		}
	}
	if inv.Route.RequiresRegistration {
		if err := h.registration.RequireRegistered(ctx, msg.GuildID, msg.AuthorID); err != nil {
			return err
		}
	}
	return inv.Route.Handler(ctx, inv)
}

// replyError answers with the domain error's message, or with the generic
// message for anything else.
func (h *Handler) replyError(ctx context.Context, log *logrus.Entry, channelID string, err error) {
	text := pkgdiscord.DomainErrorMessage(h.translator, h.cfg.Locale, err, h.errorData())
	if text == "" {
		log.WithError(err).Error("command failed")
		text = h.tr("error.generic", nil)
	} else {
		log.WithError(err).Debug("command rejected")
	}
	h.reply(ctx, log, channelID, text)
}

func (h *Handler) errorData() map[string]any {
	return map[string]any{"Prefix": h.cfg.Prefix, "Role": h.cfg.AdminRole}
}
