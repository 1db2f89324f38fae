package occurrence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"regimen/pkg/platform/sentinel"
)

// Postgres persists claims in the routine_occurrences table. The primary key
// on (routine, occurred_at) makes Claim a single atomic insert-if-absent.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed occurrence store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Claim(ctx context.Context, routine string, occurredAt int64) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO routine_occurrences (routine, occurred_at)
		VALUES ($1, $2)
		ON CONFLICT (routine, occurred_at) DO NOTHING
	`, routine, time.Unix(occurredAt, 0).UTC())
	if err != nil {
		return fmt.Errorf("claim occurrence: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim occurrence: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("occurrence %s/%d: %w", routine, occurredAt, sentinel.ErrAlreadyClaimed)
	}
	return nil
}
