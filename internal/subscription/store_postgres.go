package subscription

import (
	"context"
	"database/sql"
	"fmt"
)

// Postgres persists subscription sets. Each toggle is a single statement, so
// rapid opt-in/opt-out for the same user never loses an update.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed subscription store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Subscribe(ctx context.Context, userID, routine string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, routine)
		VALUES ($1, $2)
		ON CONFLICT (user_id, routine) DO NOTHING
	`, userID, routine)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

func (s *Postgres) Unsubscribe(ctx context.Context, userID, routine string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM subscriptions WHERE user_id = $1 AND routine = $2
	`, userID, routine)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

func (s *Postgres) Subscribers(ctx context.Context, routine string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id FROM subscriptions WHERE routine = $1 ORDER BY user_id
	`, routine)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("list subscribers: %w", err)
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return users, nil
}

func (s *Postgres) SubscriptionsOf(ctx context.Context, userID string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT routine FROM subscriptions WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var routine string
		if err := rows.Scan(&routine); err != nil {
			return nil, fmt.Errorf("list subscriptions: %w", err)
		}
		out[routine] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return out, nil
}
