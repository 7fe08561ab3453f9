package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/andy/countdown/internal/db"
	"github.com/andy/countdown/internal/domain"
)

// EventRepo is a SQLite implementation of EventRepository
type EventRepo struct {
	db *db.DB
}

// NewEventRepo creates a new EventRepo
func NewEventRepo(database *db.DB) *EventRepo {
	return &EventRepo{db: database}
}

// Create appends an event to the journal and sets its ID
func (r *EventRepo) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (session_id, kind, remaining_seconds, packed, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`

	var packed interface{}
	if event.Packed != nil {
		packed = int64(*event.Packed)
	}

	res, err := r.db.ExecContext(ctx, query,
		event.SessionID,
		string(event.Kind),
		event.RemainingSeconds,
		packed,
		event.OccurredAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get event id: %w", err)
	}
	event.ID = id

	return nil
}

// List returns the most recent events, newest first.
// sessionID matches as a literal prefix so short IDs work; nil lists every session.
// limit <= 0 means no limit.
func (r *EventRepo) List(ctx context.Context, sessionID *string, limit int) ([]*domain.Event, error) {
	var (
		where []string
		args  []interface{}
	)
	if sessionID != nil {
		where = append(where, "substr(session_id, 1, ?) = ?")
		args = append(args, len(*sessionID), *sessionID)
	}

	query := "SELECT id, session_id, kind, remaining_seconds, packed, occurred_at FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		var kind, occurredAt string
		var packed sql.NullInt64

		if err := rows.Scan(
			&event.ID,
			&event.SessionID,
			&kind,
			&event.RemainingSeconds,
			&packed,
			&occurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.Kind = domain.EventKind(kind)
		if packed.Valid {
			p := domain.PackedTime(packed.Int64)
			event.Packed = &p
		}
		if event.OccurredAt, err = parseTime(occurredAt); err != nil {
			return nil, fmt.Errorf("failed to parse occurred_at: %w", err)
		}

		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// DeleteAll clears the journal and returns the number of removed events
func (r *EventRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events")
	if err != nil {
		return 0, fmt.Errorf("failed to clear events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared events: %w", err)
	}
	return n, nil
}
