package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	store      output.Store
	platform   output.Platform
	translator output.T
	locale     string
}

func NewEventService(
	store output.Store,
	platform output.Platform,
	translator output.T,
	locale string,
) *EventService {
	return &EventService{
		store:      store,
		platform:   platform,
		translator: translator,
		locale:     locale,
	}
}

// CreateEvent reserves the name, provisions the event role and its private
// channel, then publishes the status message in statusChannelID.
// A failure part way leaves whatever was already created in place.
func (s *EventService) CreateEvent(ctx context.Context, guildID, name, description, statusChannelID string) (*entities.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyEventName
	}

	event, err := s.store.CreateEvent(ctx, name, description, guildID)
	if err != nil {
		return nil, err
	}

	roleID, err := s.platform.CreateRole(ctx, guildID, name)
	if err != nil {
		return event, fmt.Errorf("create role: %w", err)
	}
	event.EventRoleID = roleID
	if err := s.store.UpdateEvent(ctx, event.ID, output.EventUpdate{EventRoleID: output.Field(roleID)}); err != nil {
		return event, fmt.Errorf("save role: %w", err)
	}

	channelID, err := s.platform.CreatePrivateChannel(ctx, guildID, name, description, roleID)
	if err != nil {
		return event, fmt.Errorf("create channel: %w", err)
	}
	event.EventChannelID = channelID
	if err := s.store.UpdateEvent(ctx, event.ID, output.EventUpdate{EventChannelID: output.Field(channelID)}); err != nil {
		return event, fmt.Errorf("save channel: %w", err)
	}

	if err := s.PublishStatus(ctx, event, statusChannelID); err != nil {
		return event, err
	}
	return event, nil
}

// PublishStatus replaces the event's status message with a fresh one in
// channelID and adds the join reaction to it.
func (s *EventService) PublishStatus(ctx context.Context, event *entities.Event, channelID string) error {
	if event.HasStatusMessage() {
		err := s.platform.DeleteMessage(ctx, event.MessageChannelID, event.MessageID)
		if err != nil && !errors.Is(err, output.ErrResourceNotFound) {
			return fmt.Errorf("delete status message: %w", err)
		}
	}

	view, err := s.StatusView(ctx, event, true)
	if err != nil {
		return err
	}
	messageID, err := s.platform.SendEmbed(ctx, channelID, view)
	if err != nil {
		return fmt.Errorf("send status message: %w", err)
	}

	update := output.EventUpdate{
		MessageID:        output.Field(messageID),
		MessageChannelID: output.Field(channelID),
	}
	update.Apply(event)
	if err := s.store.UpdateEvent(ctx, event.ID, update); err != nil {
		return fmt.Errorf("save status message: %w", err)
	}

	if err := s.platform.AddReaction(ctx, channelID, messageID, domain.JoinEmoji); err != nil {
		return fmt.Errorf("add join reaction: %w", err)
	}
	return nil
}

func (s *EventService) RefreshStatus(ctx context.Context, event *entities.Event) error {
	if !event.HasStatusMessage() {
		return nil
	}
	view, err := s.StatusView(ctx, event, true)
	if err != nil {
		return err
	}
	if err := s.platform.EditEmbed(ctx, event.MessageChannelID, event.MessageID, view); err != nil {
		return fmt.Errorf("edit status message: %w", err)
	}
	return nil
}

// StatusView renders the event's name, description and participants.
func (s *EventService) StatusView(ctx context.Context, event *entities.Event, withJoinHint bool) (output.Embed, error) {
	participants, err := s.store.GetParticipantsOfEvent(ctx, event.ID)
	if err != nil {
		return output.Embed{}, err
	}

	names := make([]string, 0, len(participants))
	for _, userID := range participants {
		name, err := s.platform.DisplayName(ctx, event.GuildID, userID)
		switch {
		case errors.Is(err, output.ErrResourceNotFound):
			name = "<@" + userID + ">"
		case err != nil:
			return output.Embed{}, fmt.Errorf("resolve participant: %w", err)
		}
		names = append(names, name)
	}

	value := "-"
	if len(names) > 0 {
		value = strings.Join(names, "\n")
	}

	view := output.Embed{
		Title:       "**" + event.Name + "**",
		Description: event.Description,
		Fields: []output.EmbedField{{
			Name:  fmt.Sprintf("%s (%d)", s.translator.T(s.locale, "status.participants", nil), len(names)),
			Value: value,
		}},
	}
	if withJoinHint {
		view.Fields = append(view.Fields, output.EmbedField{
			Name:  s.translator.T(s.locale, "status.join_label", nil),
			Value: s.translator.T(s.locale, "status.join_hint", map[string]any{"Emoji": domain.JoinEmoji}),
		})
	}
	return view, nil
}

// Join adds userID to the event and grants the event role. It reports false
// when the user already participates.
func (s *EventService) Join(ctx context.Context, event *entities.Event, userID string) (bool, error) {
	joined, err := s.store.JoinEvent(ctx, event.ID, userID)
	if err != nil || !joined {
		return joined, err
	}
	if event.EventRoleID != "" {
		if err := s.platform.AddMemberRole(ctx, event.GuildID, userID, event.EventRoleID); err != nil {
			return true, fmt.Errorf("grant event role: %w", err)
		}
	}
	return true, nil
}

func (s *EventService) Leave(ctx context.Context, event *entities.Event, userID string) (bool, error) {
	left, err := s.store.LeaveEvent(ctx, event.ID, userID)
	if err != nil || !left {
		return left, err
	}
	if event.EventRoleID != "" {
		err := s.platform.RemoveMemberRole(ctx, event.GuildID, userID, event.EventRoleID)
		if err != nil && !errors.Is(err, output.ErrResourceNotFound) {
			return true, fmt.Errorf("revoke event role: %w", err)
		}
	}
	return true, nil
}

// DeleteEvent removes the event's channel (or only its privacy overrides when
// deleteChannel is false), role and status message, then the event itself.
// Resources already gone are skipped.
func (s *EventService) DeleteEvent(ctx context.Context, event *entities.Event, deleteChannel bool) error {
	if event.EventChannelID != "" {
		var err error
		if deleteChannel {
			err = s.platform.DeleteChannel(ctx, event.EventChannelID)
		} else {
			err = s.platform.ResetChannelPermissions(ctx, event.GuildID, event.EventChannelID)
		}
		if err != nil && !errors.Is(err, output.ErrResourceNotFound) {
			return fmt.Errorf("remove event channel: %w", err)
		}
	}

	if event.EventRoleID != "" {
		err := s.platform.DeleteRole(ctx, event.GuildID, event.EventRoleID)
		if err != nil && !errors.Is(err, output.ErrResourceNotFound) {
			return fmt.Errorf("delete event role: %w", err)
		}
	}

	if event.HasStatusMessage() {
		err := s.platform.DeleteMessage(ctx, event.MessageChannelID, event.MessageID)
		if err != nil && !errors.Is(err, output.ErrResourceNotFound) {
			return fmt.Errorf("delete status message: %w", err)
		}
	}

	return s.store.DeleteEvent(ctx, event.ID)
}

func (s *EventService) FindByName(ctx context.Context, guildID, name string) (*entities.Event, error) {
	return s.store.GetEventBy(ctx, output.ByName(guildID, strings.TrimSpace(name)))
}

func (s *EventService) FindByStatusMessage(ctx context.Context, messageID, channelID string) (*entities.Event, error) {
	return s.store.GetEventBy(ctx, output.ByStatusMessage(messageID, channelID))
}

func (s *EventService) FindByEventChannel(ctx context.Context, channelID string) (*entities.Event, error) {
	return s.store.GetEventBy(ctx, output.ByEventChannel(channelID))
}

func (s *EventService) ListEvents(ctx context.Context, guildID string) ([]entities.Event, error) {
	return s.store.GetAllEvents(ctx, guildID)
}
