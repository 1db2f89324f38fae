// Package occurrence persists which (routine, occurrence) pairs have been
// evaluated. Claiming is an atomic insert-if-absent, which is what makes a
// firing at-most-once across restarts and across concurrently scheduled
// processes.
package occurrence

import "context"

// Store is the durable firing marker.
type Store interface {
	// Claim records the occurrence as evaluated. Returns
	// sentinel.ErrAlreadyClaimed (wrapped) when another claimant got there
	// first; the caller must then skip evaluation entirely.
	Claim(ctx context.Context, routine string, occurredAt int64) error
}
