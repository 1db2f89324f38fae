package streak

import "time"

// Window is a half-open [From, To) time range.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// WeekOf returns the civil week containing t: Monday 00:00 to the following
// Monday 00:00 in loc. Deadlines firing Sunday 23:59 therefore evaluate the
// week that is about to close, not the next one.
func WeekOf(t time.Time, loc *time.Location) Window {
	t = t.In(loc)
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -daysSinceMonday).Date()
	monday := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return Window{From: monday, To: monday.AddDate(0, 0, 7)}
}

// DayOf returns the civil day containing t in loc.
func DayOf(t time.Time, loc *time.Location) Window {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return Window{From: start, To: start.AddDate(0, 0, 1)}
}

// DistinctDays counts the calendar days in loc covered by at least one event.
// Both stores and all predicates count through here so the whole system
// shares one civil-calendar convention.
func DistinctDays(events []EvidenceEvent, loc *time.Location) int {
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		seen[ev.OccurredAt.In(loc).Format(time.DateOnly)] = struct{}{}
	}
	return len(seen)
}
