// Package subscription tracks which routines each user has opted into.
// Toggles are idempotent and atomic per user; the scheduler reads membership
// at evaluation time, so changes take effect on the next firing.
package subscription

import "context"

// Store is the subscription set.
type Store interface {
	// Subscribe adds the routine to the user's set. No-op if present.
	Subscribe(ctx context.Context, userID, routine string) error
	// Unsubscribe removes the routine from the user's set. No-op if absent.
	Unsubscribe(ctx context.Context, userID, routine string) error
	// Subscribers returns, ordered by user id, every user currently opted
	// into the routine.
	Subscribers(ctx context.Context, routine string) ([]string, error)
	// SubscriptionsOf returns the user's opted-in routine names.
	SubscriptionsOf(ctx context.Context, userID string) (map[string]struct{}, error)
}
