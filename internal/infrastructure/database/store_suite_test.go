package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

// runStoreSuite exercises the output.Store contract. Every subtest works in
// its own guild so the suite can share one database.
func runStoreSuite(t *testing.T, store output.Store) {
	ctx := context.Background()
	newGuild := func() string { return "guild-" + uuid.NewString() }

	t.Run("register guild once", func(t *testing.T) {
		guildID := newGuild()

		ok, err := store.RegisterGuild(ctx, guildID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.RegisterGuild(ctx, guildID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("register user per guild", func(t *testing.T) {
		g1, g2 := newGuild(), newGuild()
		for _, g := range []string{g1, g2} {
			_, err := store.RegisterGuild(ctx, g)
			require.NoError(t, err)
		}

		registered, err := store.IsRegistered(ctx, "u1", g1)
		require.NoError(t, err)
		assert.False(t, registered)

		ok, err := store.RegisterUser(ctx, "u1", g1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.RegisterUser(ctx, "u1", g1)
		require.NoError(t, err)
		assert.False(t, ok, "second registration in the same guild")

		ok, err = store.RegisterUser(ctx, "u1", g2)
		require.NoError(t, err)
		assert.True(t, ok, "registration is independent per guild")

		registered, err = store.IsRegistered(ctx, "u1", g1)
		require.NoError(t, err)
		assert.True(t, registered)
	})

	t.Run("register user in unknown guild fails", func(t *testing.T) {
		ok, err := store.RegisterUser(ctx, "u1", newGuild())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("create event rejects duplicate name in guild", func(t *testing.T) {
		g1, g2 := newGuild(), newGuild()

		event, err := store.CreateEvent(ctx, "Finals", "D", g1)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.NotZero(t, event.ID)
		assert.Equal(t, "Finals", event.Name)
		assert.Equal(t, "D", event.Description)
		assert.Equal(t, g1, event.GuildID)
		assert.Empty(t, event.MessageID)
		assert.Empty(t, event.MessageChannelID)
		assert.Empty(t, event.EventRoleID)
		assert.Empty(t, event.EventChannelID)

		dup, err := store.CreateEvent(ctx, "Finals", "other", g1)
		assert.ErrorIs(t, err, domain.ErrEventExists)
		assert.Nil(t, dup)

		other, err := store.CreateEvent(ctx, "Finals", "D", g2)
		require.NoError(t, err)
		assert.NotEqual(t, event.ID, other.ID)
	})

	t.Run("get event by each criterion", func(t *testing.T) {
		g := newGuild()
		event, err := store.CreateEvent(ctx, "Finals", "D", g)
		require.NoError(t, err)

		found, err := store.GetEventBy(ctx, output.ByName(g, "Finals"))
		require.NoError(t, err)
		assert.Equal(t, event, found)

		_, err = store.GetEventBy(ctx, output.ByStatusMessage("m-"+g, "c-"+g))
		assert.ErrorIs(t, err, domain.ErrEventNotFound)

		err = store.UpdateEvent(ctx, event.ID, output.EventUpdate{
			MessageID:        output.Field("m-" + g),
			MessageChannelID: output.Field("c-" + g),
			EventChannelID:   output.Field("ec-" + g),
			EventRoleID:      output.Field("r-" + g),
		})
		require.NoError(t, err)

		byMessage, err := store.GetEventBy(ctx, output.ByStatusMessage("m-"+g, "c-"+g))
		require.NoError(t, err)
		assert.Equal(t, event.ID, byMessage.ID)
		assert.Equal(t, "r-"+g, byMessage.EventRoleID)

		byChannel, err := store.GetEventBy(ctx, output.ByEventChannel("ec-"+g))
		require.NoError(t, err)
		assert.Equal(t, event.ID, byChannel.ID)

		_, err = store.GetEventBy(ctx, output.ByStatusMessage("m-"+g, "elsewhere"))
		assert.ErrorIs(t, err, domain.ErrEventNotFound)

		_, err = store.GetEventBy(ctx, output.EventLookup{})
		assert.ErrorIs(t, err, domain.ErrInvalidLookup)
	})

	t.Run("update event applies only supplied fields", func(t *testing.T) {
		g := newGuild()
		event, err := store.CreateEvent(ctx, "Finals", "D", g)
		require.NoError(t, err)

		require.NoError(t, store.UpdateEvent(ctx, event.ID, output.EventUpdate{EventRoleID: output.Field("r1")}))
		require.NoError(t, store.UpdateEvent(ctx, event.ID, output.EventUpdate{Description: output.Field("new")}))
		require.NoError(t, store.UpdateEvent(ctx, event.ID, output.EventUpdate{}))

		found, err := store.GetEventBy(ctx, output.ByName(g, "Finals"))
		require.NoError(t, err)
		assert.Equal(t, "r1", found.EventRoleID)
		assert.Equal(t, "new", found.Description)
		assert.Empty(t, found.EventChannelID)

		require.NoError(t, store.UpdateEvent(ctx, event.ID, output.EventUpdate{EventRoleID: output.Field("")}))
		found, err = store.GetEventBy(ctx, output.ByName(g, "Finals"))
		require.NoError(t, err)
		assert.Empty(t, found.EventRoleID)
	})

	t.Run("update unknown event is a no-op", func(t *testing.T) {
		err := store.UpdateEvent(ctx, 1<<40, output.EventUpdate{Description: output.Field("x")})
		assert.NoError(t, err)
	})

	t.Run("rename onto an existing name fails", func(t *testing.T) {
		g := newGuild()
		_, err := store.CreateEvent(ctx, "A", "", g)
		require.NoError(t, err)
		b, err := store.CreateEvent(ctx, "B", "", g)
		require.NoError(t, err)

		err = store.UpdateEvent(ctx, b.ID, output.EventUpdate{Name: output.Field("A")})
		assert.ErrorIs(t, err, domain.ErrEventExists)
	})

	t.Run("join and leave", func(t *testing.T) {
		event, err := store.CreateEvent(ctx, "Finals", "D", newGuild())
		require.NoError(t, err)

		joined, err := store.JoinEvent(ctx, event.ID, "u1")
		require.NoError(t, err)
		assert.True(t, joined)

		joined, err = store.JoinEvent(ctx, event.ID, "u1")
		require.NoError(t, err)
		assert.False(t, joined)

		joined, err = store.JoinEvent(ctx, event.ID, "u2")
		require.NoError(t, err)
		assert.True(t, joined)

		participants, err := store.GetParticipantsOfEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2"}, participants)

		left, err := store.LeaveEvent(ctx, event.ID, "u1")
		require.NoError(t, err)
		assert.True(t, left)

		left, err = store.LeaveEvent(ctx, event.ID, "u1")
		require.NoError(t, err)
		assert.False(t, left)

		participants, err = store.GetParticipantsOfEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"u2"}, participants)
	})

	t.Run("join unknown event fails", func(t *testing.T) {
		joined, err := store.JoinEvent(ctx, 1<<40, "u1")
		require.NoError(t, err)
		assert.False(t, joined)
	})

	t.Run("delete event removes participations", func(t *testing.T) {
		g := newGuild()
		event, err := store.CreateEvent(ctx, "Finals", "D", g)
		require.NoError(t, err)
		require.NoError(t, store.UpdateEvent(ctx, event.ID, output.EventUpdate{EventChannelID: output.Field("ec-" + g)}))
		for _, u := range []string{"u1", "u2", "u3"} {
			_, err := store.JoinEvent(ctx, event.ID, u)
			require.NoError(t, err)
		}

		require.NoError(t, store.DeleteEvent(ctx, event.ID))

		participants, err := store.GetParticipantsOfEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Empty(t, participants)

		_, err = store.GetEventBy(ctx, output.ByName(g, "Finals"))
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		_, err = store.GetEventBy(ctx, output.ByEventChannel("ec-"+g))
		assert.ErrorIs(t, err, domain.ErrEventNotFound)

		again, err := store.CreateEvent(ctx, "Finals", "D", g)
		require.NoError(t, err, "the name is free again")
		assert.NotEqual(t, event.ID, again.ID)
	})

	t.Run("get all events of a guild", func(t *testing.T) {
		g := newGuild()
		events, err := store.GetAllEvents(ctx, g)
		require.NoError(t, err)
		assert.Empty(t, events)

		for _, name := range []string{"Quarter", "Finals", "Semi"} {
			_, err := store.CreateEvent(ctx, name, "", g)
			require.NoError(t, err)
		}
		_, err = store.CreateEvent(ctx, "Elsewhere", "", newGuild())
		require.NoError(t, err)

		events, err = store.GetAllEvents(ctx, g)
		require.NoError(t, err)
		require.Len(t, events, 3)
		names := []string{events[0].Name, events[1].Name, events[2].Name}
		assert.Equal(t, []string{"Finals", "Quarter", "Semi"}, names)
	})

	t.Run("scenario", func(t *testing.T) {
		g := newGuild()
		ok, err := store.RegisterGuild(ctx, g)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = store.RegisterUser(ctx, "U", g)
		require.NoError(t, err)
		require.True(t, ok)

		event, err := store.CreateEvent(ctx, "Finals", "D", g)
		require.NoError(t, err)
		assert.NotZero(t, event.ID)

		joined, err := store.JoinEvent(ctx, event.ID, "U")
		require.NoError(t, err)
		assert.True(t, joined)
		participants, err := store.GetParticipantsOfEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"U"}, participants)

		joined, err = store.JoinEvent(ctx, event.ID, "U")
		require.NoError(t, err)
		assert.False(t, joined)
		participants, err = store.GetParticipantsOfEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"U"}, participants)
	})
}
