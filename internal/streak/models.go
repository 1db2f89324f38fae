// Package streak holds the append-only evidence log and the civil-calendar
// helpers every completion rule is authored against.
package streak

import (
	"time"

	"github.com/google/uuid"
)

// EvidenceEvent records that a user performed a routine at a point in time.
// Events are immutable and never deleted; duplicates on the same day are
// permitted and collapse at the distinct-day level, not here.
type EvidenceEvent struct {
	ID         uuid.UUID
	UserID     string
	Routine    string
	OccurredAt time.Time
}

// NewEvidenceEvent builds an event with a fresh ID.
func NewEvidenceEvent(userID, routine string, occurredAt time.Time) EvidenceEvent {
	return EvidenceEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Routine:    routine,
		OccurredAt: occurredAt,
	}
}
