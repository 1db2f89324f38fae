package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// Postgres persists balances in the users table. Adjust is one atomic
// INSERT ... ON CONFLICT ... RETURNING statement so concurrent punishments
// and corrections for the same user can never lose an update.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed ledger.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) EnsureUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, balance)
		VALUES ($1, 0.0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

func (s *Postgres) Balance(ctx context.Context, userID string) (float64, error) {
	var balance float64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (user_id, balance)
		VALUES ($1, 0.0)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING balance
	`, userID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

func (s *Postgres) Adjust(ctx context.Context, userID string, delta float64) (float64, error) {
	var balance float64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = users.balance + EXCLUDED.balance
		RETURNING balance
	`, userID, delta).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}
	return balance, nil
}

func (s *Postgres) SetBalance(ctx context.Context, userID string, value float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = EXCLUDED.balance
	`, userID, value)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}

func (s *Postgres) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
