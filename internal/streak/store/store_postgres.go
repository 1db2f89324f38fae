package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"regimen/internal/streak"

	"github.com/google/uuid"
)

// Postgres persists evidence events in the streaks table. This store is pure
// I/O; distinct-day counting happens in Go so Postgres session timezones can
// never disagree with the predicates' civil calendar.
type Postgres struct {
	db  *sql.DB
	loc *time.Location
}

// NewPostgres constructs a Postgres-backed evidence log counting days in loc.
func NewPostgres(db *sql.DB, loc *time.Location) *Postgres {
	return &Postgres{db: db, loc: loc}
}

func (s *Postgres) Record(ctx context.Context, event streak.EvidenceEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO streaks (id, user_id, routine, occurred_at)
		VALUES ($1, $2, $3, $4)
	`, event.ID, event.UserID, event.Routine, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("record evidence: %w", err)
	}
	return nil
}

func (s *Postgres) Summarize(ctx context.Context, userID string, week streak.Window, routines []string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, routine, occurred_at
		FROM streaks
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
	`, userID, week.From, week.To)
	if err != nil {
		return nil, fmt.Errorf("summarize streaks: %w", err)
	}
	defer rows.Close()

	byRoutine := make(map[string][]streak.EvidenceEvent)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("summarize streaks: %w", err)
		}
		byRoutine[ev.Routine] = append(byRoutine[ev.Routine], ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize streaks: %w", err)
	}

	summary := make(map[string]int, len(routines))
	for _, name := range routines {
		summary[name] = streak.DistinctDays(byRoutine[name], s.loc)
	}
	return summary, nil
}

func (s *Postgres) EventsFor(ctx context.Context, userID, routine string, window streak.Window) ([]streak.EvidenceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, routine, occurred_at
		FROM streaks
		WHERE user_id = $1 AND routine = $2 AND occurred_at >= $3 AND occurred_at < $4
		ORDER BY occurred_at
	`, userID, routine, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("load evidence: %w", err)
	}
	defer rows.Close()

	var out []streak.EvidenceEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("load evidence: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load evidence: %w", err)
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (streak.EvidenceEvent, error) {
	var (
		ev streak.EvidenceEvent
		id string
	)
	if err := rows.Scan(&id, &ev.UserID, &ev.Routine, &ev.OccurredAt); err != nil {
		return streak.EvidenceEvent{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return streak.EvidenceEvent{}, err
	}
	ev.ID = parsed
	return ev, nil
}
