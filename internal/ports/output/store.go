package output

import (
	"context"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

// Store is the persistence gateway. Every mutating call runs in its own
// transaction; expected conflicts are reported through the results rather
// than as errors.
type Store interface {
	// RegisterGuild returns false when the guild is already registered.
	RegisterGuild(ctx context.Context, guildID string) (bool, error)
	// RegisterUser returns false when the user is already registered in the
	// guild or the guild itself is not registered.
	RegisterUser(ctx context.Context, userID, guildID string) (bool, error)
	IsRegistered(ctx context.Context, userID, guildID string) (bool, error)

	// CreateEvent returns domain.ErrEventExists when the guild already has an
	// event with that name.
	CreateEvent(ctx context.Context, name, description, guildID string) (*entities.Event, error)
	// GetEventBy returns domain.ErrEventNotFound when nothing matches.
	GetEventBy(ctx context.Context, lookup EventLookup) (*entities.Event, error)
	// UpdateEvent applies the non-nil fields of update. An unknown id is a no-op.
	UpdateEvent(ctx context.Context, id int64, update EventUpdate) error
	// DeleteEvent removes the event and all of its participations.
	DeleteEvent(ctx context.Context, id int64) error
	GetAllEvents(ctx context.Context, guildID string) ([]entities.Event, error)

	// JoinEvent returns false when the user already participates.
	JoinEvent(ctx context.Context, eventID int64, userID string) (bool, error)
	// LeaveEvent returns true iff a participation was removed.
	LeaveEvent(ctx context.Context, eventID int64, userID string) (bool, error)
	// GetParticipantsOfEvent returns user ids in join order.
	GetParticipantsOfEvent(ctx context.Context, eventID int64) ([]string, error)

	Close() error
}

// LookupKind identifies which criterion an EventLookup uses.
type LookupKind int

const (
	LookupByName LookupKind = iota + 1
	LookupByStatusMessage
	LookupByEventChannel
)

// EventLookup selects a single event. Exactly one criterion group must be set:
// (GuildID, Name), (MessageID, MessageChannelID) or EventChannelID.
type EventLookup struct {
	GuildID          string
	Name             string
	MessageID        string
	MessageChannelID string
	EventChannelID   string
}

func ByName(guildID, name string) EventLookup {
	return EventLookup{GuildID: guildID, Name: name}
}

func ByStatusMessage(messageID, channelID string) EventLookup {
	return EventLookup{MessageID: messageID, MessageChannelID: channelID}
}

func ByEventChannel(channelID string) EventLookup {
	return EventLookup{EventChannelID: channelID}
}

// Kind validates the lookup and reports the criterion in use.
func (l EventLookup) Kind() (LookupKind, error) {
	var kind LookupKind
	groups := 0
	if l.GuildID != "" || l.Name != "" {
		if l.GuildID == "" || l.Name == "" {
			return 0, domain.ErrInvalidLookup
		}
		kind = LookupByName
		groups++
	}
	if l.MessageID != "" || l.MessageChannelID != "" {
		if l.MessageID == "" || l.MessageChannelID == "" {
			return 0, domain.ErrInvalidLookup
		}
		kind = LookupByStatusMessage
		groups++
	}
	if l.EventChannelID != "" {
		kind = LookupByEventChannel
		groups++
	}
	if groups != 1 {
		return 0, domain.ErrInvalidLookup
	}
	return kind, nil
}

// EventUpdate lists the event fields to overwrite. Nil fields are left
// untouched; an empty string clears a resource id.
type EventUpdate struct {
	Name             *string
	Description      *string
	MessageID        *string
	MessageChannelID *string
	EventRoleID      *string
	EventChannelID   *string
}

// IsEmpty reports whether the update changes nothing.
func (u EventUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil &&
		u.MessageID == nil && u.MessageChannelID == nil &&
		u.EventRoleID == nil && u.EventChannelID == nil
}

// Apply copies the set fields onto e.
func (u EventUpdate) Apply(e *entities.Event) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.Name, u.Name)
	set(&e.Description, u.Description)
	set(&e.MessageID, u.MessageID)
	set(&e.MessageChannelID, u.MessageChannelID)
	set(&e.EventRoleID, u.EventRoleID)
	set(&e.EventChannelID, u.EventChannelID)
}

// Field returns a pointer to v, for building an EventUpdate.
func Field(v string) *string {
	return &v
}
