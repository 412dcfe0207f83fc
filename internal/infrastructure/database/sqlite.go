package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.Store = (*SQLiteStore)(nil)

// SQLiteStore implements output.Store on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database file at path. Migrations must already be applied.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// withTx runs fn in a transaction, committing on success and rolling back on
// any error.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RegisterGuild(ctx context.Context, guildID string) (bool, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO guilds (id) VALUES (?)`, guildID)
		return err
	})
	if isConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("register guild: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) RegisterUser(ctx context.Context, userID, guildID string) (bool, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO users (id, guild_id) VALUES (?, ?)`, userID, guildID)
		return err
	})
	if isConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("register user: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) IsRegistered(ctx context.Context, userID, guildID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = ? AND guild_id = ?)`,
		userID, guildID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is registered: %w", err)
	}
	return exists, nil
}

func (s *SQLiteStore) CreateEvent(ctx context.Context, name, description, guildID string) (*entities.Event, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO events (guild_id, name, description) VALUES (?, ?, ?)`,
			guildID, name, description,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if isUniqueViolation(err) {
		return nil, domain.ErrEventExists
	}
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &entities.Event{
		ID:          id,
		GuildID:     guildID,
		Name:        name,
		Description: description,
	}, nil
}

func (s *SQLiteStore) GetEventBy(ctx context.Context, lookup output.EventLookup) (*entities.Event, error) {
	kind, err := lookup.Kind()
	if err != nil {
		return nil, err
	}

	var row *sql.Row
	switch kind {
	case output.LookupByName:
		row = s.db.QueryRowContext(ctx,
			`SELECT `+eventColumns+` FROM events WHERE guild_id = ? AND name = ?`,
			lookup.GuildID, lookup.Name)
	case output.LookupByStatusMessage:
		row = s.db.QueryRowContext(ctx,
			`SELECT `+eventColumns+` FROM events WHERE message_id = ? AND message_channel_id = ?`,
			lookup.MessageID, lookup.MessageChannelID)
	case output.LookupByEventChannel:
		row = s.db.QueryRowContext(ctx,
			`SELECT `+eventColumns+` FROM events WHERE event_channel_id = ?`,
			lookup.EventChannelID)
	}

	e, err := scanSQLiteEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

func (s *SQLiteStore) UpdateEvent(ctx context.Context, id int64, update output.EventUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	cols := eventUpdateColumns(update)

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c.column+" = ?")
		if c.nullable {
			args = append(args, nullString(c.value))
		} else {
			args = append(args, c.value)
		}
	}
	args = append(args, id)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		return err
	})
	if isUniqueViolation(err) {
		return domain.ErrEventExists
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteEvent(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM participations WHERE event_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAllEvents(ctx context.Context, guildID string) ([]entities.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE guild_id = ? ORDER BY name`, guildID)
	if err != nil {
		return nil, fmt.Errorf("get all events: %w", err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		e, err := scanSQLiteEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all events: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) JoinEvent(ctx context.Context, eventID int64, userID string) (bool, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO participations (user_id, event_id, joined_at) VALUES (?, ?, ?)`,
			userID, eventID, toMillis(time.Now()),
		)
		return err
	})
	if isConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("join event: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) LeaveEvent(ctx context.Context, eventID int64, userID string) (bool, error) {
	var removed int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM participations WHERE user_id = ? AND event_id = ?`, userID, eventID)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("leave event: %w", err)
	}
	return removed == 1, nil
}

func (s *SQLiteStore) GetParticipantsOfEvent(ctx context.Context, eventID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM participations WHERE event_id = ? ORDER BY joined_at, rowid`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	return out, nil
}
