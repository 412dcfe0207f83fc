package database

import (
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

// Columns shared by every event SELECT, in scan order.
const eventColumns = `id, guild_id, name, description, message_id, message_channel_id, event_role_id, event_channel_id`

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

type columnValue struct {
	column string
	value  string
	// resource ids are stored as NULL when empty
	nullable bool
}

func eventUpdateColumns(u output.EventUpdate) []columnValue {
	var cols []columnValue
	add := func(column string, v *string, nullable bool) {
		if v != nil {
			cols = append(cols, columnValue{column: column, value: *v, nullable: nullable})
		}
	}
	add("name", u.Name, false)
	add("description", u.Description, false)
	add("message_id", u.MessageID, true)
	add("message_channel_id", u.MessageChannelID, true)
	add("event_role_id", u.EventRoleID, true)
	add("event_channel_id", u.EventChannelID, true)
	return cols
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEvent(row rowScanner) (entities.Event, error) {
	var (
		e                                       entities.Event
		messageID, messageChannelID, roleID, ch sql.NullString
	)
	err := row.Scan(&e.ID, &e.GuildID, &e.Name, &e.Description, &messageID, &messageChannelID, &roleID, &ch)
	if err != nil {
		return entities.Event{}, err
	}
	e.MessageID = messageID.String
	e.MessageChannelID = messageChannelID.String
	e.EventRoleID = roleID.String
	e.EventChannelID = ch.String
	return e, nil
}

// pgEventRow mirrors the events table for pgx.RowToStructByName.
type pgEventRow struct {
	ID               int64       `db:"id"`
	GuildID          string      `db:"guild_id"`
	Name             string      `db:"name"`
	Description      string      `db:"description"`
	MessageID        pgtype.Text `db:"message_id"`
	MessageChannelID pgtype.Text `db:"message_channel_id"`
	EventRoleID      pgtype.Text `db:"event_role_id"`
	EventChannelID   pgtype.Text `db:"event_channel_id"`
}

func (r pgEventRow) toDomain() entities.Event {
	return entities.Event{
		ID:               r.ID,
		GuildID:          r.GuildID,
		Name:             r.Name,
		Description:      r.Description,
		MessageID:        r.MessageID.String,
		MessageChannelID: r.MessageChannelID.String,
		EventRoleID:      r.EventRoleID.String,
		EventChannelID:   r.EventChannelID.String,
	}
}
