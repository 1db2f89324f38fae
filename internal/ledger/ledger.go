// Package ledger holds per-user spendable balances. All legitimate mutation
// is relative; the absolute set exists only for the administrative override
// and is never reachable from the punishment path.
package ledger

import "context"

// Store is the balance ledger.
type Store interface {
	// EnsureUser creates the user with balance 0.0 if absent. Idempotent.
	EnsureUser(ctx context.Context, userID string) error
	// Balance returns the user's balance, creating the user if absent.
	Balance(ctx context.Context, userID string) (float64, error)
	// Adjust atomically applies balance += delta and returns the new
	// balance. Concurrent adjustments for the same user serialize at the
	// storage layer; callers never read-then-write.
	Adjust(ctx context.Context, userID string, delta float64) (float64, error)
	// SetBalance overwrites the balance. Administrative correction only.
	SetBalance(ctx context.Context, userID string, value float64) error
	// Users returns every known user id, ordered.
	Users(ctx context.Context) ([]string, error)
}
