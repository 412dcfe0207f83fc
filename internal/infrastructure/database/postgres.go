package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.Store = (*PostgresStore)(nil)

// PostgresStore implements output.Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPool creates a pgx connection pool for PostgreSQL.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenPostgres connects to dsn. Migrations must already be applied.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

func (s *PostgresStore) exec(ctx context.Context, sql string, args ...any) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, sql, args...)
		return err
	})
}

func (s *PostgresStore) RegisterGuild(ctx context.Context, guildID string) (bool, error) {
	err := s.exec(ctx, `INSERT INTO guilds (id) VALUES ($1)`, guildID)
	if isConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("register guild: %w", err)
	}
	return true, nil
}

func (s *PostgresStore) RegisterUser(ctx context.Context, userID, guildID string) (bool, error) {
	err := s.exec(ctx, `INSERT INTO users (id, guild_id) VALUES ($1, $2)`, userID, guildID)
	if isConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("register user: %w", err)
	}
	return true, nil
}

func (s *PostgresStore) IsRegistered(ctx context.Context, userID, guildID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND guild_id = $2)`,
		userID, guildID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is registered: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CreateEvent(ctx context.Context, name, description, guildID string) (*entities.Event, error) {
	var id int64
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO events (guild_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
			guildID, name, description,
		).Scan(&id)
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

func (s *PostgresStore) GetEventBy(ctx context.Context, lookup output.EventLookup) (*entities.Event, error) {
	kind, err := lookup.Kind()
	if err != nil {
		return nil, err
	}

	var (
		where string
		args  []any
	)
	switch kind {
	case output.LookupByName:
		where, args = `guild_id = $1 AND name = $2`, []any{lookup.GuildID, lookup.Name}
	case output.LookupByStatusMessage:
		where, args = `message_id = $1 AND message_channel_id = $2`, []any{lookup.MessageID, lookup.MessageChannelID}
	case output.LookupByEventChannel:
		where, args = `event_channel_id = $1`, []any{lookup.EventChannelID}
	}

	rows, _ := s.pool.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE `+where+` LIMIT 1`, args...)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[pgEventRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	e := row.toDomain()
	return &e, nil
}

func (s *PostgresStore) UpdateEvent(ctx context.Context, id int64, update output.EventUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	cols := eventUpdateColumns(update)

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, c.column+" = $"+strconv.Itoa(i+1))
		if c.nullable {
			args = append(args, textOrNull(c.value))
		} else {
			args = append(args, c.value)
		}
	}
	args = append(args, id)

	err := s.exec(ctx,
		`UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id = $`+strconv.Itoa(len(args)),
		args...)
	if isUniqueViolation(err) {
		return domain.ErrEventExists
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, id int64) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM participations WHERE event_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAllEvents(ctx context.Context, guildID string) ([]entities.Event, error) {
	rows, _ := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE guild_id = $1 ORDER BY name`, guildID)
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[pgEventRow])
	if err != nil {
		return nil, fmt.Errorf("get all events: %w", err)
	}
	out := make([]entities.Event, len(found))
	for i := range found {
		out[i] = found[i].toDomain()
	}
	return out, nil
}

func (s *PostgresStore) JoinEvent(ctx context.Context, eventID int64, userID string) (bool, error) {
	err := s.exec(ctx, `INSERT INTO participations (user_id, event_id) VALUES ($1, $2)`, userID, eventID)
	if isConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("join event: %w", err)
	}
	return true, nil
}

func (s *PostgresStore) LeaveEvent(ctx context.Context, eventID int64, userID string) (bool, error) {
	var removed int64
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM participations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
		if err != nil {
			return err
		}
		removed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("leave event: %w", err)
	}
	return removed == 1, nil
}

func (s *PostgresStore) GetParticipantsOfEvent(ctx context.Context, eventID int64) ([]string, error) {
	rows, _ := s.pool.Query(ctx,
		`SELECT user_id FROM participations WHERE event_id = $1 ORDER BY joined_at, user_id`, eventID)
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	return out, nil
}
