package occurrence

import (
	"context"
	"fmt"
	"sync"

	"regimen/pkg/platform/sentinel"
)

// InMemory keeps claims in process memory. At-most-once holds within one
// process lifetime only; production runs the Postgres store.
type InMemory struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

// NewInMemory creates an empty in-memory occurrence store.
func NewInMemory() *InMemory {
	return &InMemory{claimed: make(map[string]struct{})}
}

func (s *InMemory) Claim(_ context.Context, routine string, occurredAt int64) error {
	key := fmt.Sprintf("%s/%d", routine, occurredAt)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claimed[key]; ok {
		return fmt.Errorf("occurrence %s: %w", key, sentinel.ErrAlreadyClaimed)
	}
	s.claimed[key] = struct{}{}
	return nil
}
