// Package routine is the static catalogue of trackable routines: name,
// penalty, deadline recurrence and completion rule. The catalogue is fixed at
// process start and never mutated.
package routine

import (
	"fmt"
	"time"

	"regimen/internal/streak"
)

// Routine is one registry definition. Names are immutable once registered.
type Routine struct {
	Name        string
	Description string
	// Emoji keys the reaction-toggle protocol on the rules message.
	Emoji string
	// Penalty is the (negative) delta applied to a subscriber's balance when
	// the deadline fires unmet.
	Penalty float64
	// Deadline is when the completion rule is evaluated.
	Deadline DeadlineRule
	// Rule decides whether the routine counts as satisfied at a firing.
	Rule Predicate
}

func (r Routine) validate() error {
	if r.Name == "" {
		return fmt.Errorf("routine has no name")
	}
	if r.Penalty >= 0 {
		return fmt.Errorf("routine %q: penalty must be negative, got %v", r.Name, r.Penalty)
	}
	if err := r.Deadline.validate(); err != nil {
		return fmt.Errorf("routine %q: %w", r.Name, err)
	}
	if err := r.Rule.validate(); err != nil {
		return fmt.Errorf("routine %q: %w", r.Name, err)
	}
	return nil
}

// DeadlineRule is a recurrence: a time of day, daily or on one weekday.
type DeadlineRule struct {
	Hour   int
	Minute int
	// Weekday restricts the rule to one day of the week. Nil means daily.
	Weekday *time.Weekday
}

// Daily builds a rule firing every day at hour:minute.
func Daily(hour, minute int) DeadlineRule {
	return DeadlineRule{Hour: hour, Minute: minute}
}

// Weekly builds a rule firing once a week on day at hour:minute.
func Weekly(day time.Weekday, hour, minute int) DeadlineRule {
	return DeadlineRule{Hour: hour, Minute: minute, Weekday: &day}
}

func (d DeadlineRule) validate() error {
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 {
		return fmt.Errorf("deadline %02d:%02d out of range", d.Hour, d.Minute)
	}
	return nil
}

// Next returns the first occurrence strictly after t in loc.
func (d DeadlineRule) Next(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, day := t.Date()
	occ := time.Date(y, m, day, d.Hour, d.Minute, 0, 0, loc)
	for !occ.After(t) || !d.matchesWeekday(occ) {
		occ = occ.AddDate(0, 0, 1)
	}
	return occ
}

// Previous returns the most recent occurrence at or before t in loc. The
// scheduler uses it on startup to detect an occurrence missed inside the
// misfire grace window.
func (d DeadlineRule) Previous(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, day := t.Date()
	occ := time.Date(y, m, day, d.Hour, d.Minute, 0, 0, loc)
	for occ.After(t) || !d.matchesWeekday(occ) {
		occ = occ.AddDate(0, 0, -1)
	}
	return occ
}

func (d DeadlineRule) matchesWeekday(t time.Time) bool {
	return d.Weekday == nil || t.Weekday() == *d.Weekday
}

func (d DeadlineRule) String() string {
	if d.Weekday != nil {
		return fmt.Sprintf("%s %02d:%02d", d.Weekday, d.Hour, d.Minute)
	}
	return fmt.Sprintf("daily %02d:%02d", d.Hour, d.Minute)
}

// PredicateKind is the closed set of completion rules. Routine definitions
// carry a kind plus parameters, never executable code, so every rule is
// independently unit-testable.
type PredicateKind string

const (
	// DailyPresence: at least one event on the firing's calendar day.
	DailyPresence PredicateKind = "daily-presence"
	// WeeklyQuota: events on at least MinDays distinct days of the firing's
	// week.
	WeeklyQuota PredicateKind = "weekly-quota"
	// WeeklyPresence: at least one event anywhere in the firing's week.
	WeeklyPresence PredicateKind = "weekly-presence"
)

// Predicate is the tagged completion rule.
type Predicate struct {
	Kind PredicateKind
	// MinDays applies to WeeklyQuota only.
	MinDays int
}

func (p Predicate) validate() error {
	switch p.Kind {
	case DailyPresence, WeeklyPresence:
		return nil
	case WeeklyQuota:
		if p.MinDays < 1 || p.MinDays > 7 {
			return fmt.Errorf("weekly quota %d out of range", p.MinDays)
		}
		return nil
	case "":
		return fmt.Errorf("missing predicate")
	default:
		return fmt.Errorf("unknown predicate kind %q", p.Kind)
	}
}

// Window returns the evidence window the predicate must be evaluated over for
// a firing at firedAt: the firing's day for daily rules, its week otherwise.
// The upper bound is capped at the firing instant so evaluation never sees
// evidence from the future of the deadline.
func (p Predicate) Window(firedAt time.Time, loc *time.Location) streak.Window {
	var w streak.Window
	if p.Kind == DailyPresence {
		w = streak.DayOf(firedAt, loc)
	} else {
		w = streak.WeekOf(firedAt, loc)
	}
	if w.To.After(firedAt) {
		w.To = firedAt
	}
	return w
}

// Satisfied evaluates the rule against events already restricted to the
// predicate's window.
func (p Predicate) Satisfied(events []streak.EvidenceEvent, loc *time.Location) bool {
	switch p.Kind {
	case DailyPresence, WeeklyPresence:
		return len(events) > 0
	case WeeklyQuota:
		return streak.DistinctDays(events, loc) >= p.MinDays
	default:
		return false
	}
}
