package ledger

import (
	"context"
	"sort"
	"sync"
)

// InMemory keeps balances in process memory. One mutex serializes every
// mutation, which makes Adjust a single critical section rather than a
// read-then-write from the caller.
type InMemory struct {
	mu       sync.Mutex
	balances map[string]float64
}

// NewInMemory creates an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{balances: make(map[string]float64)}
}

func (s *InMemory) EnsureUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[userID]; !ok {
		s.balances[userID] = 0.0
	}
	return nil
}

func (s *InMemory) Balance(_ context.Context, userID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[userID]; !ok {
		s.balances[userID] = 0.0
	}
	return s.balances[userID], nil
}

func (s *InMemory) Adjust(_ context.Context, userID string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] += delta
	return s.balances[userID], nil
}

func (s *InMemory) SetBalance(_ context.Context, userID string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] = value
	return nil
}

func (s *InMemory) Users(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]string, 0, len(s.balances))
	for userID := range s.balances {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users, nil
}
