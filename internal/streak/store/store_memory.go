package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"regimen/internal/streak"
)

// InMemory keeps the evidence log in process memory. It intentionally favors
// clarity over performance; the log only ever grows.
type InMemory struct {
	mu     sync.RWMutex
	events []streak.EvidenceEvent
	loc    *time.Location
}

// NewInMemory creates an empty in-memory evidence log counting days in loc.
func NewInMemory(loc *time.Location) *InMemory {
	return &InMemory{loc: loc}
}

func (s *InMemory) Record(_ context.Context, event streak.EvidenceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemory) Summarize(_ context.Context, userID string, week streak.Window, routines []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byRoutine := make(map[string][]streak.EvidenceEvent)
	for _, ev := range s.events {
		if ev.UserID == userID && week.Contains(ev.OccurredAt) {
			byRoutine[ev.Routine] = append(byRoutine[ev.Routine], ev)
		}
	}

	summary := make(map[string]int, len(routines))
	for _, name := range routines {
		summary[name] = streak.DistinctDays(byRoutine[name], s.loc)
	}
	return summary, nil
}

func (s *InMemory) EventsFor(_ context.Context, userID, routine string, window streak.Window) ([]streak.EvidenceEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []streak.EvidenceEvent
	for _, ev := range s.events {
		if ev.UserID == userID && ev.Routine == routine && window.Contains(ev.OccurredAt) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}
