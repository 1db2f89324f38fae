// Package store persists evidence events. Two implementations share the
// contract: an in-memory store for development and tests, and Postgres.
package store

import (
	"context"

	"regimen/internal/streak"
)

// Store is the append-only evidence log.
type Store interface {
	// Record appends an event. It never rejects duplicates; idempotence is
	// the predicate's job via distinct-day counting.
	Record(ctx context.Context, event streak.EvidenceEvent) error

	// Summarize returns the distinct-day count per routine inside the week
	// window. Every routine in the routines argument appears in the result,
	// zero-filled when it has no events that week.
	Summarize(ctx context.Context, userID string, week streak.Window, routines []string) (map[string]int, error)

	// EventsFor returns the user's events for one routine inside [from, to),
	// ordered by time, fetched in a single read so deadline evaluation sees
	// a consistent snapshot.
	EventsFor(ctx context.Context, userID, routine string, window streak.Window) ([]streak.EvidenceEvent, error)
}
