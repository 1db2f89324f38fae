package subscription

import (
	"context"
	"sort"
	"sync"
)

// InMemory keeps subscription sets in process memory.
type InMemory struct {
	mu     sync.RWMutex
	byUser map[string]map[string]struct{}
}

// NewInMemory creates an empty in-memory subscription store.
func NewInMemory() *InMemory {
	return &InMemory{byUser: make(map[string]map[string]struct{})}
}

func (s *InMemory) Subscribe(_ context.Context, userID, routine string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.byUser[userID]
	if set == nil {
		set = make(map[string]struct{})
		s.byUser[userID] = set
	}
	set[routine] = struct{}{}
	return nil
}

func (s *InMemory) Unsubscribe(_ context.Context, userID, routine string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser[userID], routine)
	return nil
}

func (s *InMemory) Subscribers(_ context.Context, routine string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []string
	for userID, set := range s.byUser {
		if _, ok := set[routine]; ok {
			users = append(users, userID)
		}
	}
	sort.Strings(users)
	return users, nil
}

func (s *InMemory) SubscriptionsOf(_ context.Context, userID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.byUser[userID]))
	for routine := range s.byUser[userID] {
		out[routine] = struct{}{}
	}
	return out, nil
}
